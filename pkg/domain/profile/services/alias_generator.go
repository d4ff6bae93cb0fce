package profile_services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
)

const maxAliasAttempts = 20

// AliasGenerator mints a unique, bounded-retry placeholder alias on
// registration (grounded on original_source/backend/app/modules/auth/api.py
// lines 240-279). The base is derived from the contact used to register —
// last 4 digits of a phone, or the first 4 characters of an email's local
// part — suffixed with a short random hex string on conflict.
type AliasGenerator struct {
	Profiles profile_out.UserProfileReader
}

func NewAliasGenerator(profiles profile_out.UserProfileReader) *AliasGenerator {
	return &AliasGenerator{Profiles: profiles}
}

func (g *AliasGenerator) Generate(ctx context.Context, kind identity_entities.ContactKind, value string) (string, error) {
	base := "player_" + suffixFromContact(kind, value)

	candidate := base
	for attempt := 0; attempt < maxAliasAttempts; attempt++ {
		if attempt > 0 {
			rnd, err := randomHex(3)
			if err != nil {
				return "", err
			}
			candidate = base + "_" + rnd
		}

		existing, err := g.Profiles.FindByAlias(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("alias generator: exhausted %d attempts for base %q", maxAliasAttempts, base)
}

func suffixFromContact(kind identity_entities.ContactKind, value string) string {
	if kind == identity_entities.ContactKindPhone {
		digits := value
		if len(digits) > 4 {
			digits = digits[len(digits)-4:]
		}
		return strings.ToLower(digits)
	}

	local := value
	if at := strings.IndexByte(value, '@'); at >= 0 {
		local = value[:at]
	}
	local = strings.ToLower(local)
	if len(local) > 4 {
		local = local[:4]
	}
	if local == "" {
		local = uuid.New().String()[:4]
	}
	return local
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
