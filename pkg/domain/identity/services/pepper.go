package identity_services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
)

// PepperHasher computes keyed SHA-256 digests for values that must be
// compared but never stored in the clear: OTP codes, login-attempt keys,
// and refresh tokens.
type PepperHasher struct {
	otpPepper   []byte
	loginPepper []byte
}

func NewPepperHasher(otpPepper, loginPepper string) *PepperHasher {
	return &PepperHasher{
		otpPepper:   []byte(otpPepper),
		loginPepper: []byte(loginPepper),
	}
}

func (p *PepperHasher) HashOtpCode(code string) string {
	return keyedHash(p.otpPepper, code)
}

// HashLoginKey hashes "kind:value" for the login-attempt throttle.
func (p *PepperHasher) HashLoginKey(kind identity_entities.ContactKind, value string) string {
	return keyedHash(p.loginPepper, fmt.Sprintf("%s:%s", kind, value))
}

// HashRefreshToken hashes a presented refresh token for comparison against
// AuthSession.RefreshHash.
func (p *PepperHasher) HashRefreshToken(token string) string {
	return keyedHash(p.loginPepper, token)
}

func keyedHash(key []byte, value string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
