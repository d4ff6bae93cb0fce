package audit_usecases

import (
	"context"

	"github.com/google/uuid"

	audit_entities "github.com/rivio-api/rivio-api/pkg/domain/audit/entities"
	audit_out "github.com/rivio-api/rivio-api/pkg/domain/audit/ports/out"
)

// RecordUseCase appends a single audit row. It carries no branching logic
// of its own — every other component calls it with the actor, entity, and
// action names requires, inline within its own open transaction.
type RecordUseCase struct {
	Logs audit_out.AuditLogWriter
}

func NewRecordUseCase(logs audit_out.AuditLogWriter) *RecordUseCase {
	return &RecordUseCase{Logs: logs}
}

func (u *RecordUseCase) Record(ctx context.Context, actorUserID *uuid.UUID, entityType, entityID, action string, data map[string]interface{}) error {
	entry := audit_entities.New(actorUserID, entityType, entityID, action, data)
	return u.Logs.Append(ctx, entry)
}
