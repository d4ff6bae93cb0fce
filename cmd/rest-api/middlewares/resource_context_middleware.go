package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	crypto "github.com/rivio-api/rivio-api/pkg/infra/crypto"
)

// AuthContextMiddleware parses the Bearer access token on every request and
// stamps the caller's identity into context. Unlike the old resource-owner
// header scheme it never rejects a request by itself — a missing or invalid
// token just leaves AuthenticatedKey false, and RequireAuthentication (or an
// ownership check further down the chain) is what actually enforces it.
type AuthContextMiddleware struct {
	jwt *crypto.JWTIssuer
}

func NewResourceContextMiddleware(c container.Container) *AuthContextMiddleware {
	var jwt *crypto.JWTIssuer
	if err := c.Resolve(&jwt); err != nil {
		panic(err)
	}
	return &AuthContextMiddleware{jwt: jwt}
}

func (m *AuthContextMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), common.TenantIDKey, common.DefaultTenantID)
		ctx = context.WithValue(ctx, common.AuthenticatedKey, false)

		authz := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authz, "Bearer ")
		if !ok || token == "" {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		claims, err := m.jwt.ParseAndValidate(token, crypto.TokenTypeAccess)
		if err != nil {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		ctx = context.WithValue(ctx, common.UserIDKey, userID)
		ctx = context.WithValue(ctx, common.AuthenticatedKey, true)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
