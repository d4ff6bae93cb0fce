package identity_services

import (
	"strings"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
)

// NormalizeContact implements 's contact normalization: phone to
// E.164 digits-only, email lower-cased. It also infers kind from shape when
// the caller only has a raw identifier (login's "parses identifier as email
// iff it contains '@'").
func NormalizeContact(kind identity_entities.ContactKind, raw string) (identity_entities.ContactKind, string, error) {
	switch kind {
	case identity_entities.ContactKindEmail:
		return identity_entities.ContactKindEmail, strings.ToLower(strings.TrimSpace(raw)), nil
	case identity_entities.ContactKindPhone:
		return identity_entities.ContactKindPhone, normalizePhone(raw), nil
	default:
		return "", "", common.NewErrInvalidInput("contact kind must be phone or email")
	}
}

// InferContactKind implements login's identifier parsing rule.
func InferContactKind(identifier string) identity_entities.ContactKind {
	if strings.Contains(identifier, "@") {
		return identity_entities.ContactKindEmail
	}
	return identity_entities.ContactKindPhone
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return "+" + b.String()
}
