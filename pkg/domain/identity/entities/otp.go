package identity_entities

import (
	"time"

	"github.com/google/uuid"
)

// OtpPurpose scopes an AuthOtp row to the flow that issued it.
type OtpPurpose string

const (
	OtpPurposeRegister       OtpPurpose = "register"
	OtpPurposePasswordReset  OtpPurpose = "password_reset"
	OtpPurposeContactChange  OtpPurpose = "contact_change"
)

const MaxOtpAttempts = 5

// AuthOtp is a one-time code scoped to (contact_kind, contact_value, purpose).
// Only the most-recent unconsumed row for that tuple is eligible for
// verification. Generalizes an email-verification token/attempt model to
// cover phone contacts and multiple purposes.
type AuthOtp struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	ContactKind  ContactKind `json:"contact_kind" db:"contact_kind"`
	ContactValue string      `json:"contact_value" db:"contact_value"`
	Purpose      OtpPurpose  `json:"purpose" db:"purpose"`
	CodeHash     string      `json:"-" db:"code_hash"`
	Attempts     int         `json:"attempts" db:"attempts"`
	ExpiresAt    time.Time   `json:"expires_at" db:"expires_at"`
	ConsumedAt   *time.Time  `json:"consumed_at,omitempty" db:"consumed_at"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

func NewAuthOtp(kind ContactKind, value string, purpose OtpPurpose, codeHash string, ttl time.Duration) *AuthOtp {
	now := time.Now().UTC()
	return &AuthOtp{
		ID:           uuid.New(),
		ContactKind:  kind,
		ContactValue: value,
		Purpose:      purpose,
		CodeHash:     codeHash,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	}
}

func (o *AuthOtp) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

func (o *AuthOtp) IsConsumed() bool {
	return o.ConsumedAt != nil
}

func (o *AuthOtp) HasAttemptsRemaining() bool {
	return o.Attempts < MaxOtpAttempts
}

// RecordAttempt increments the attempt counter; callers only call this on a
// wrong-code comparison.
func (o *AuthOtp) RecordAttempt() {
	o.Attempts++
}

func (o *AuthOtp) Consume(now time.Time) {
	o.ConsumedAt = &now
}

// AuthLoginAttempt is a sliding-window throttle record.
type AuthLoginAttempt struct {
	ID            uuid.UUID `json:"id" db:"id"`
	LoginKeyHash  string    `json:"-" db:"login_key_hash"`
	Success       bool      `json:"success" db:"success"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func NewAuthLoginAttempt(loginKeyHash string, success bool) *AuthLoginAttempt {
	return &AuthLoginAttempt{
		ID:           uuid.New(),
		LoginKeyHash: loginKeyHash,
		Success:      success,
		CreatedAt:    time.Now().UTC(),
	}
}
