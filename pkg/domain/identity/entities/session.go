package identity_entities

import (
	"time"

	"github.com/google/uuid"
)

// RevokedReason explains why an AuthSession stopped being usable.
type RevokedReason string

const (
	RevokedReasonRotated       RevokedReason = "rotated"
	RevokedReasonLogout        RevokedReason = "logout"
	RevokedReasonPasswordReset RevokedReason = "password_reset"
)

// AuthSession is a rotating refresh session: a token-minting shape
// generalized into the session+refresh-hash model this service's
// concurrency invariants require.
type AuthSession struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	UserID        uuid.UUID      `json:"user_id" db:"user_id"`
	RefreshHash   string         `json:"-" db:"refresh_hash"`
	ExpiresAt     time.Time      `json:"expires_at" db:"expires_at"`
	RevokedAt     *time.Time     `json:"revoked_at,omitempty" db:"revoked_at"`
	RevokedReason *RevokedReason `json:"revoked_reason,omitempty" db:"revoked_reason"`
	ReplacedBy    *uuid.UUID     `json:"replaced_by,omitempty" db:"replaced_by"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

func NewAuthSession(userID uuid.UUID, refreshHash string, ttl time.Duration) *AuthSession {
	now := time.Now().UTC()
	return &AuthSession{
		ID:          uuid.New(),
		UserID:      userID,
		RefreshHash: refreshHash,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}
}

// IsUsable implements property 4 exactly: usable iff
// revoked_at IS NULL ∧ now < expires_at ∧ stored hash == presented hash.
func (s *AuthSession) IsUsable(now time.Time, presentedHash string) bool {
	if s.RevokedAt != nil {
		return false
	}
	if !now.Before(s.ExpiresAt) {
		return false
	}
	return s.RefreshHash == presentedHash
}

// Rotate marks this session revoked (reason='rotated') and links the
// replacement, satisfying the invariant "replaced_by is set iff
// revoked_reason='rotated'". Must be called under a row lock (FOR UPDATE).
func (s *AuthSession) Rotate(replacementID uuid.UUID, now time.Time) {
	reason := RevokedReasonRotated
	s.RevokedAt = &now
	s.RevokedReason = &reason
	s.ReplacedBy = &replacementID
}

func (s *AuthSession) Revoke(reason RevokedReason, now time.Time) {
	if s.RevokedAt != nil {
		return // idempotent
	}
	s.RevokedAt = &now
	s.RevokedReason = &reason
}
