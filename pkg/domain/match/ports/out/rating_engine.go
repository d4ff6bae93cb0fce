package match_out

import (
	"context"

	"github.com/google/uuid"
)

// RatingEngine is implemented by the Elo engine (domain/elo) and invoked
// from the confirm use case's ratification step. Kept as an out-port here, mirroring identity_out's
// ProfileProvisioner, to avoid match importing the elo package directly.
type RatingEngine interface {
	ApplyRatings(ctx context.Context, matchID uuid.UUID) error
}

// AnalyticsProjector is implemented by domain/analytics and invoked inline
// within the same ratify transaction.
type AnalyticsProjector interface {
	ProjectMatch(ctx context.Context, matchID uuid.UUID) error
}

// IdentityVerifier is implemented by domain/identity; used by match
// creation's eligibility check. Kept as an out-port rather than an identity import to avoid a
// domain-to-domain package dependency.
type IdentityVerifier interface {
	HasVerifiedIdentity(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AuditRecorder is implemented by domain/audit (audit_usecases.RecordUseCase)
// and called inline within the same transaction as the transition it
// describes. Kept as an out-port per this
// codebase's standard cross-domain decoupling pattern rather than an audit
// import.
type AuditRecorder interface {
	Record(ctx context.Context, actorUserID *uuid.UUID, entityType, entityID, action string, data map[string]interface{}) error
}
