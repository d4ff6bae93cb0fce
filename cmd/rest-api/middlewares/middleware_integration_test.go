package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	crypto "github.com/rivio-api/rivio-api/pkg/infra/crypto"
)

// testHandler records whether it ran and lets the caller inspect context.
type testHandler struct {
	executed bool
	action   func(w http.ResponseWriter, r *http.Request)
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.executed = true
	if h.action != nil {
		h.action(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func newTestJWTIssuer() *crypto.JWTIssuer {
	return crypto.NewJWTIssuer("test-signing-key", time.Hour, 24*time.Hour)
}

func TestAuthContextMiddleware_NoToken(t *testing.T) {
	m := &AuthContextMiddleware{jwt: newTestJWTIssuer()}

	var authenticated interface{}
	handler := &testHandler{action: func(w http.ResponseWriter, r *http.Request) {
		authenticated = r.Context().Value(common.AuthenticatedKey)
		w.WriteHeader(http.StatusOK)
	}}

	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	rr := httptest.NewRecorder()
	m.Handler(handler).ServeHTTP(rr, req)

	if authenticated != false {
		t.Fatalf("expected AuthenticatedKey=false without a bearer token, got %v", authenticated)
	}
}

func TestAuthContextMiddleware_ValidToken(t *testing.T) {
	jwt := newTestJWTIssuer()
	m := &AuthContextMiddleware{jwt: jwt}

	userID := uuid.New()
	token, _, err := jwt.MintAccessToken(userID)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	var gotUserID uuid.UUID
	var authenticated bool
	handler := &testHandler{action: func(w http.ResponseWriter, r *http.Request) {
		authenticated, _ = r.Context().Value(common.AuthenticatedKey).(bool)
		gotUserID, _ = r.Context().Value(common.UserIDKey).(uuid.UUID)
		w.WriteHeader(http.StatusOK)
	}}

	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	m.Handler(handler).ServeHTTP(rr, req)

	if !authenticated {
		t.Fatal("expected AuthenticatedKey=true for a valid bearer token")
	}
	if gotUserID != userID {
		t.Fatalf("expected user id %s in context, got %s", userID, gotUserID)
	}
}

func TestAuthContextMiddleware_InvalidToken(t *testing.T) {
	m := &AuthContextMiddleware{jwt: newTestJWTIssuer()}

	var authenticated interface{}
	handler := &testHandler{action: func(w http.ResponseWriter, r *http.Request) {
		authenticated = r.Context().Value(common.AuthenticatedKey)
		w.WriteHeader(http.StatusOK)
	}}

	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	m.Handler(handler).ServeHTTP(rr, req)

	if authenticated != false {
		t.Fatalf("expected AuthenticatedKey=false for a malformed token, got %v", authenticated)
	}
}

func TestRequireAuthentication_RejectsUnauthenticated(t *testing.T) {
	handler := &testHandler{}
	chain := RequireAuthentication()(handler)

	req := httptest.NewRequest(http.MethodPost, "/matches", nil)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if handler.executed {
		t.Fatal("handler should not run when unauthenticated")
	}
}

func TestMiddlewareChain_AuthThenRequireAuthentication(t *testing.T) {
	jwt := newTestJWTIssuer()
	authCtx := &AuthContextMiddleware{jwt: jwt}
	userID := uuid.New()
	token, _, _ := jwt.MintAccessToken(userID)

	handler := &testHandler{action: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}}

	var chain http.Handler = handler
	chain = RequireAuthentication()(chain)
	chain = authCtx.Handler(chain)
	chain = ErrorMiddleware(chain)

	req := httptest.NewRequest(http.MethodPost, "/matches", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for an authenticated request, got %d", rr.Code)
	}
	if !handler.executed {
		t.Fatal("expected the final handler to run")
	}
}
