package identity_out

import (
	"context"
	"time"

	"github.com/google/uuid"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
)

type UserWriter interface {
	Create(ctx context.Context, user *identity_entities.User) error
	Update(ctx context.Context, user *identity_entities.User) error
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity_entities.User, error)
}

type AuthIdentityWriter interface {
	Create(ctx context.Context, identity *identity_entities.AuthIdentity) error
	Update(ctx context.Context, identity *identity_entities.AuthIdentity) error
}

type AuthIdentityReader interface {
	// FindVerifiedByKindValue looks up a verified identity by (kind,value) —
	// used by request_otp's anti-enumeration branch and by login.
	FindVerifiedByKindValue(ctx context.Context, kind identity_entities.ContactKind, value string) (*identity_entities.AuthIdentity, error)
	FindByUserAndKind(ctx context.Context, userID uuid.UUID, kind identity_entities.ContactKind) (*identity_entities.AuthIdentity, error)
}

type AuthCredentialWriter interface {
	Upsert(ctx context.Context, credential *identity_entities.AuthCredential) error
}

type AuthCredentialReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*identity_entities.AuthCredential, error)
}

type AuthOtpWriter interface {
	Create(ctx context.Context, otp *identity_entities.AuthOtp) error
	Update(ctx context.Context, otp *identity_entities.AuthOtp) error
}

type AuthOtpReader interface {
	// FindLatest returns the most recent row for (kind,value,purpose),
	// consumed or not — callers decide eligibility.
	FindLatest(ctx context.Context, kind identity_entities.ContactKind, value string, purpose identity_entities.OtpPurpose) (*identity_entities.AuthOtp, error)
	// FindLatestForUpdate is FindLatest under a row lock, for the
	// verification transaction.
	FindLatestForUpdate(ctx context.Context, kind identity_entities.ContactKind, value string, purpose identity_entities.OtpPurpose) (*identity_entities.AuthOtp, error)
}

type AuthSessionWriter interface {
	Create(ctx context.Context, session *identity_entities.AuthSession) error
	Update(ctx context.Context, session *identity_entities.AuthSession) error
	// RevokeAllForUser revokes every active session for a user (password
	// reset mass-revocation, ).
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, reason identity_entities.RevokedReason, now time.Time) error
}

type AuthSessionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity_entities.AuthSession, error)
	// FindByIDForUpdate locks the row for the rotation transaction
	//.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*identity_entities.AuthSession, error)
}

type AuthLoginAttemptWriter interface {
	Create(ctx context.Context, attempt *identity_entities.AuthLoginAttempt) error
}

type AuthLoginAttemptReader interface {
	CountFailuresSince(ctx context.Context, loginKeyHash string, since time.Time) (int, error)
}

// PasswordHasher abstracts the credential hashing algorithm (bcrypt in this
// deployment, see infra/crypto/bcrypt_adapter.go).
type PasswordHasher interface {
	HashPassword(ctx context.Context, password string) (string, error)
	ComparePassword(ctx context.Context, hashedPassword string, password string) error
}

// ProfileProvisioner is called by register_complete to ensure a UserProfile
// exists with an auto-generated unique alias. Implemented by
// pkg/domain/profile and wired in at the ioc layer to avoid a package
// dependency from identity onto profile.
type ProfileProvisioner interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID) error
}

// SessionIssuer mints the access/refresh token pair and its backing
// AuthSession row, keeping JWT minting and refresh-hash bookkeeping behind
// one seam the use cases call without reaching into infra/crypto directly.
type SessionIssuer interface {
	IssueSession(ctx context.Context, userID uuid.UUID) (accessToken, refreshToken string, err error)
	// RotateSession mints a replacement session and hashes its refresh
	// token, without touching the old session row (callers lock/revoke it).
	RotateSession(ctx context.Context, userID uuid.UUID) (session *identity_entities.AuthSession, accessToken, refreshToken string, err error)
	HashRefreshToken(token string) string
	// ParseRefreshToken returns the claimed session id from a refresh JWT.
	ParseRefreshToken(token string) (sessionID uuid.UUID, userID uuid.UUID, err error)
}
