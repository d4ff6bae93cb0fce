package crypto

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenType distinguishes access from refresh claims.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the JWT payload minted for both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	Type      TokenType  `json:"type"`
	SessionID *uuid.UUID `json:"sid,omitempty"`
}

// JWTIssuer mints and parses the bearer tokens the transport layer requires,
// using golang-jwt/jwt/v4 for real signed claims rather than an opaque token.
type JWTIssuer struct {
	signingKey      []byte
	accessTTL       time.Duration
	refreshTTL      time.Duration
}

func NewJWTIssuer(signingKey string, accessTTL, refreshTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (j *JWTIssuer) MintAccessToken(userID uuid.UUID) (string, time.Time, error) {
	return j.mint(userID, TokenTypeAccess, nil, j.accessTTL)
}

func (j *JWTIssuer) MintRefreshToken(userID, sessionID uuid.UUID) (string, time.Time, error) {
	return j.mint(userID, TokenTypeRefresh, &sessionID, j.refreshTTL)
}

func (j *JWTIssuer) mint(userID uuid.UUID, tokenType TokenType, sessionID *uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Type:      tokenType,
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}

	return signed, expiresAt, nil
}

// ParseAndValidate returns the claims iff the token is well-formed, signed
// by this issuer, unexpired, and of the expected type.
func (j *JWTIssuer) ParseAndValidate(tokenString string, expectedType TokenType) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Type != expectedType {
		return nil, fmt.Errorf("unexpected token type: want %s got %s", expectedType, claims.Type)
	}

	return claims, nil
}
