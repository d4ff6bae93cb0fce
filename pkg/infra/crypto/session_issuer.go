package crypto

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_out "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/out"
	identity_services "github.com/rivio-api/rivio-api/pkg/domain/identity/services"
)

// SessionIssuerAdapter composes JWTIssuer and PepperHasher to implement
// identity_out.SessionIssuer, keeping the token format and the refresh-hash
// algorithm out of the use cases.
type SessionIssuerAdapter struct {
	jwt        *JWTIssuer
	pepper     *identity_services.PepperHasher
	sessions   identity_out.AuthSessionWriter
	refreshTTL time.Duration
}

func NewSessionIssuerAdapter(jwt *JWTIssuer, pepper *identity_services.PepperHasher, sessions identity_out.AuthSessionWriter, refreshTTL time.Duration) identity_out.SessionIssuer {
	return &SessionIssuerAdapter{jwt: jwt, pepper: pepper, sessions: sessions, refreshTTL: refreshTTL}
}

func (s *SessionIssuerAdapter) HashRefreshToken(token string) string {
	return s.pepper.HashRefreshToken(token)
}

func (s *SessionIssuerAdapter) IssueSession(ctx context.Context, userID uuid.UUID) (string, string, error) {
	session, accessToken, refreshToken, err := s.mintAndPersist(ctx, userID)
	if err != nil {
		return "", "", err
	}
	_ = session
	return accessToken, refreshToken, nil
}

func (s *SessionIssuerAdapter) RotateSession(ctx context.Context, userID uuid.UUID) (*identity_entities.AuthSession, string, string, error) {
	return s.mintAndPersist(ctx, userID)
}

func (s *SessionIssuerAdapter) mintAndPersist(ctx context.Context, userID uuid.UUID) (*identity_entities.AuthSession, string, string, error) {
	sessionID := uuid.New()

	accessToken, _, err := s.jwt.MintAccessToken(userID)
	if err != nil {
		return nil, "", "", fmt.Errorf("mint access token: %w", err)
	}

	refreshToken, _, err := s.jwt.MintRefreshToken(userID, sessionID)
	if err != nil {
		return nil, "", "", fmt.Errorf("mint refresh token: %w", err)
	}

	session := &identity_entities.AuthSession{
		ID:          sessionID,
		UserID:      userID,
		RefreshHash: s.pepper.HashRefreshToken(refreshToken),
		ExpiresAt:   time.Now().UTC().Add(s.refreshTTL),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", "", fmt.Errorf("persist session: %w", err)
	}

	return session, accessToken, refreshToken, nil
}

func (s *SessionIssuerAdapter) ParseRefreshToken(token string) (uuid.UUID, uuid.UUID, error) {
	claims, err := s.jwt.ParseAndValidate(token, TokenTypeRefresh)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if claims.SessionID == nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("refresh token missing sid claim")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("refresh token subject: %w", err)
	}
	return *claims.SessionID, userID, nil
}
