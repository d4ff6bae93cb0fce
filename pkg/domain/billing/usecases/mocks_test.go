package billing_usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

type mockWebhookEventWriter struct{ mock.Mock }

func (m *mockWebhookEventWriter) TryInsert(ctx context.Context, event *billing_entities.BillingWebhookEvent) (bool, *billing_entities.BillingWebhookEvent, error) {
	args := m.Called(ctx, event)
	var existing *billing_entities.BillingWebhookEvent
	if args.Get(1) != nil {
		existing = args.Get(1).(*billing_entities.BillingWebhookEvent)
	}
	return args.Bool(0), existing, args.Error(2)
}

func (m *mockWebhookEventWriter) UpdateStatus(ctx context.Context, id uuid.UUID, status billing_entities.WebhookEventStatus, errMsg string) error {
	args := m.Called(ctx, id, status, errMsg)
	return args.Error(0)
}

type mockCustomerWriter struct{ mock.Mock }

func (m *mockCustomerWriter) Upsert(ctx context.Context, customer *billing_entities.BillingCustomer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type mockSubscriptionWriter struct{ mock.Mock }

func (m *mockSubscriptionWriter) Upsert(ctx context.Context, sub *billing_entities.BillingSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type mockSubscriptionReader struct{ mock.Mock }

func (m *mockSubscriptionReader) FindByProviderSubscription(ctx context.Context, provider billing_entities.Provider, providerSubscriptionID string) (*billing_entities.BillingSubscription, error) {
	args := m.Called(ctx, provider, providerSubscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing_entities.BillingSubscription), args.Error(1)
}

func (m *mockSubscriptionReader) FindByPurchaseToken(ctx context.Context, provider billing_entities.Provider, purchaseToken string) (*billing_entities.BillingSubscription, error) {
	args := m.Called(ctx, provider, purchaseToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing_entities.BillingSubscription), args.Error(1)
}

func (m *mockSubscriptionReader) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*billing_entities.BillingSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing_entities.BillingSubscription), args.Error(1)
}

type mockEntitlementWriter struct{ mock.Mock }

func (m *mockEntitlementWriter) Upsert(ctx context.Context, ent *billing_entities.UserEntitlement) error {
	args := m.Called(ctx, ent)
	return args.Error(0)
}

type mockEntitlementReader struct{ mock.Mock }

func (m *mockEntitlementReader) FindByUser(ctx context.Context, userID uuid.UUID) (*billing_entities.UserEntitlement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing_entities.UserEntitlement), args.Error(1)
}

type mockSignatureVerifier struct{ mock.Mock }

func (m *mockSignatureVerifier) Verify(rawBody []byte, signatureHeader, secret string, maxAge time.Duration, now time.Time) error {
	args := m.Called(rawBody, signatureHeader, secret, maxAge, now)
	return args.Error(0)
}

type mockReceiptValidator struct{ mock.Mock }

func (m *mockReceiptValidator) Validate(ctx context.Context, receipt string) (*billing_out.ReceiptResult, error) {
	args := m.Called(ctx, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing_out.ReceiptResult), args.Error(1)
}
