package billing_out

import (
	"context"
	"time"

	"github.com/google/uuid"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
)

type BillingCustomerWriter interface {
	Upsert(ctx context.Context, customer *billing_entities.BillingCustomer) error
}

type BillingCustomerReader interface {
	FindByProvider(ctx context.Context, provider billing_entities.Provider, providerCustomerID string) (*billing_entities.BillingCustomer, error)
	FindByUserAndProvider(ctx context.Context, userID uuid.UUID, provider billing_entities.Provider) (*billing_entities.BillingCustomer, error)
}

type BillingSubscriptionWriter interface {
	Upsert(ctx context.Context, sub *billing_entities.BillingSubscription) error
}

type BillingSubscriptionReader interface {
	FindByProviderSubscription(ctx context.Context, provider billing_entities.Provider, providerSubscriptionID string) (*billing_entities.BillingSubscription, error)
	FindByPurchaseToken(ctx context.Context, provider billing_entities.Provider, purchaseToken string) (*billing_entities.BillingSubscription, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*billing_entities.BillingSubscription, error)
}

// BillingWebhookEventWriter persists inbound events with at-most-once
// semantics: TryInsert reports false without error when the unique
// (provider, event_id) constraint already holds a row, returning that row
// so the caller can answer the `{duplicate:true, processed:...}` contract
// without a second round trip.
type BillingWebhookEventWriter interface {
	TryInsert(ctx context.Context, event *billing_entities.BillingWebhookEvent) (inserted bool, existing *billing_entities.BillingWebhookEvent, err error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status billing_entities.WebhookEventStatus, errMsg string) error
}

type UserEntitlementWriter interface {
	Upsert(ctx context.Context, entitlement *billing_entities.UserEntitlement) error
}

type UserEntitlementReader interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*billing_entities.UserEntitlement, error)
}

// WebhookNormalizer reduces a provider's raw payload into the common
// NormalizedEvent shape. One implementation per
// provider; the ingest use case picks the right one by Provider.
type WebhookNormalizer interface {
	Normalize(rawBody []byte, headers map[string]string) (*billing_entities.NormalizedEvent, error)
}

// WebhookSignatureVerifier validates the provider's signature header
// against rawBody. now is injected for deterministic
// testing of the ±max-age window.
type WebhookSignatureVerifier interface {
	Verify(rawBody []byte, signatureHeader string, secret string, maxAge time.Duration, now time.Time) error
}

// ReceiptValidator normalizes store-side receipt validation responses.
type ReceiptValidator interface {
	Validate(ctx context.Context, receipt string) (*ReceiptResult, error)
}

type ReceiptResult struct {
	ProviderSubscriptionID string
	PlanCode               billing_entities.PlanCode
	Status                 billing_entities.SubscriptionStatus
	ExpiresAt              *time.Time
	PurchaseToken          string
}
