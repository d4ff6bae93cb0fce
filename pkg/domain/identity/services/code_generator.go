package identity_services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtpCode returns a 6-digit numeric code, zero-padded. Uses
// crypto/rand rather than math/rand since the code guards account takeover.
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
