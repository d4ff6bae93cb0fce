package audit_entities

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only structured event row, written inside the same
// transaction as the action it describes.
type AuditLog struct {
	ID          uuid.UUID              `json:"id" db:"id"`
	ActorUserID *uuid.UUID             `json:"actor_user_id,omitempty" db:"actor_user_id"`
	EntityType  string                 `json:"entity_type" db:"entity_type"`
	EntityID    string                 `json:"entity_id" db:"entity_id"`
	Action      string                 `json:"action" db:"action"`
	Data        map[string]interface{} `json:"data" db:"data"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
}

func New(actorUserID *uuid.UUID, entityType, entityID, action string, data map[string]interface{}) *AuditLog {
	if data == nil {
		data = map[string]interface{}{}
	}
	return &AuditLog{
		ID:          uuid.New(),
		ActorUserID: actorUserID,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
}
