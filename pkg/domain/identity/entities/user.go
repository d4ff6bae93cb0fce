package identity_entities

import (
	"time"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
)

// UserStatus is the lifecycle of a User.
type UserStatus string

const (
	UserStatusActive          UserStatus = "active"
	UserStatusBlocked         UserStatus = "blocked"
	UserStatusPendingDeletion UserStatus = "pending_deletion"
	UserStatusDeleted         UserStatus = "deleted"
)

// User is the identity anchor. At least one of Phone/Email must be non-empty
// while Status != deleted; enforced by the use cases, not the struct itself.
type User struct {
	common.BaseEntity
	Phone       string     `json:"phone,omitempty" db:"phone"`
	Email       string     `json:"email,omitempty" db:"email"`
	Status      UserStatus `json:"status" db:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

func NewUser(resourceOwner common.ResourceOwner, phone, email string) *User {
	return &User{
		BaseEntity: common.NewPrivateEntity(resourceOwner),
		Phone:      phone,
		Email:      email,
		Status:     UserStatusActive,
	}
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) RecordLogin(now time.Time) {
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// ContactKind distinguishes the two verifiable channels a user can register.
type ContactKind string

const (
	ContactKindPhone ContactKind = "phone"
	ContactKindEmail ContactKind = "email"
)

// AuthIdentity proves control of a contact channel. Unique on
// (kind,value) and on (user_id,kind) — enforced by the persistence layer.
type AuthIdentity struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	UserID     uuid.UUID   `json:"user_id" db:"user_id"`
	Kind       ContactKind `json:"kind" db:"kind"`
	Value      string      `json:"value" db:"value"`
	IsVerified bool        `json:"is_verified" db:"is_verified"`
	VerifiedAt *time.Time  `json:"verified_at,omitempty" db:"verified_at"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

func NewAuthIdentity(userID uuid.UUID, kind ContactKind, value string) *AuthIdentity {
	now := time.Now().UTC()
	return &AuthIdentity{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (a *AuthIdentity) MarkVerified(now time.Time) {
	a.IsVerified = true
	a.VerifiedAt = &now
	a.UpdatedAt = now
}

func (a AuthIdentity) GetID() uuid.UUID { return a.ID }

// AuthCredential is the 1:1 password record for a user.
type AuthCredential struct {
	UserID            uuid.UUID `json:"user_id" db:"user_id"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	PasswordUpdatedAt time.Time `json:"password_updated_at" db:"password_updated_at"`
}

func NewAuthCredential(userID uuid.UUID, passwordHash string) *AuthCredential {
	return &AuthCredential{
		UserID:            userID,
		PasswordHash:      passwordHash,
		PasswordUpdatedAt: time.Now().UTC(),
	}
}

func (c *AuthCredential) Rotate(newHash string) {
	c.PasswordHash = newHash
	c.PasswordUpdatedAt = time.Now().UTC()
}
