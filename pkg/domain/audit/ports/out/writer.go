package audit_out

import (
	"context"

	audit_entities "github.com/rivio-api/rivio-api/pkg/domain/audit/entities"
)

// AuditLogWriter is the append-only sink every other component depends on
// through its own locally-declared port (the codebase's standard
// cross-domain decoupling pattern — see e.g. match_out.RatingEngine),
// rather than importing this package directly.
type AuditLogWriter interface {
	Append(ctx context.Context, entry *audit_entities.AuditLog) error
}
