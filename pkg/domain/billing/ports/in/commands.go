package billing_in

import (
	"context"

	"github.com/google/uuid"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
)

type IngestWebhookCommand struct {
	Provider        billing_entities.Provider
	RawBody         []byte
	Headers         map[string]string
	SignatureHeader string
}

type IngestWebhookResult struct {
	Duplicate bool
	Processed bool
}

type IngestWebhookCommandHandler interface {
	Handle(ctx context.Context, cmd IngestWebhookCommand) (*IngestWebhookResult, error)
}

type ValidateReceiptCommand struct {
	UserID   uuid.UUID
	Provider billing_entities.Provider
	Receipt  string
}

type ValidateReceiptCommandHandler interface {
	Handle(ctx context.Context, cmd ValidateReceiptCommand) (*billing_entities.UserEntitlement, error)
}

type GetEntitlementQuery struct {
	UserID uuid.UUID
}

type GetEntitlementQueryHandler interface {
	Handle(ctx context.Context, query GetEntitlementQuery) (*billing_entities.UserEntitlement, error)
}
