package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	audit_entities "github.com/rivio-api/rivio-api/pkg/domain/audit/entities"
)

// AuditLogRepository implements audit_out.AuditLogWriter.
type AuditLogRepository struct {
	DB *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry *audit_entities.AuditLog) error {
	data, err := json.Marshal(entry.Data)
	if err != nil {
		return err
	}

	const q = `INSERT INTO audit_logs (id, actor_user_id, entity_type, entity_id, action, data, created_at)
		VALUES (:id, :actor_user_id, :entity_type, :entity_id, :action, :data, :created_at)`
	row := struct {
		ID          uuid.UUID  `db:"id"`
		ActorUserID *uuid.UUID `db:"actor_user_id"`
		EntityType  string     `db:"entity_type"`
		EntityID    string     `db:"entity_id"`
		Action      string     `db:"action"`
		Data        []byte     `db:"data"`
		CreatedAt   time.Time  `db:"created_at"`
	}{
		ID:          entry.ID,
		ActorUserID: entry.ActorUserID,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		Data:        data,
		CreatedAt:   entry.CreatedAt,
	}
	_, err = sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, row)
	return err
}
