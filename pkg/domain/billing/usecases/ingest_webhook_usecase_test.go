package billing_usecases_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
	billing_services "github.com/rivio-api/rivio-api/pkg/domain/billing/services"
	billing_usecases "github.com/rivio-api/rivio-api/pkg/domain/billing/usecases"
)

func manualPayload(t *testing.T, eventID, eventType string, userID uuid.UUID, planCode, status string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"id":   eventID,
		"type": eventType,
		"data": map[string]interface{}{
			"user_id":                  userID.String(),
			"provider_subscription_id": "sub_X",
			"plan_code":                planCode,
			"status":                   status,
		},
	}
	raw, err := json.Marshal(payload)
	assert.NoError(t, err)
	return raw
}

func newIngestUseCase(events *mockWebhookEventWriter, customers *mockCustomerWriter, subs *mockSubscriptionWriter, ents *mockEntitlementWriter) *billing_usecases.IngestWebhookUseCase {
	normalizers := map[billing_entities.Provider]billing_out.WebhookNormalizer{
		billing_entities.ProviderManual: billing_services.NewGenericNormalizer(),
	}
	return billing_usecases.NewIngestWebhookUseCase(
		normalizers,
		new(mockSignatureVerifier),
		map[billing_entities.Provider]string{},
		false,
		5*time.Minute,
		events,
		customers,
		subs,
		new(mockSubscriptionReader),
		ents,
	)
}

func TestIngestWebhook_DuplicateEventReturnsProcessedFromPriorStatus(t *testing.T) {
	userID := uuid.New()
	raw := manualPayload(t, "evt_X", "subscription.updated", userID, "RIVIO_PLUS", "active")

	existing := &billing_entities.BillingWebhookEvent{Status: billing_entities.WebhookEventProcessed}
	events := new(mockWebhookEventWriter)
	events.On("TryInsert", mock.Anything, mock.Anything).Return(false, existing, nil)

	u := newIngestUseCase(events, new(mockCustomerWriter), new(mockSubscriptionWriter), new(mockEntitlementWriter))
	result, err := u.Handle(context.Background(), billing_in.IngestWebhookCommand{
		Provider: billing_entities.ProviderManual,
		RawBody:  raw,
	})

	assert.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.True(t, result.Processed)
}

func TestIngestWebhook_UpsertAppliesSubscriptionAndProjectsEntitlement(t *testing.T) {
	userID := uuid.New()
	raw := manualPayload(t, "evt_new", "subscription.updated", userID, "RIVIO_PLUS", "active")

	events := new(mockWebhookEventWriter)
	events.On("TryInsert", mock.Anything, mock.Anything).Return(true, nil, nil)
	events.On("UpdateStatus", mock.Anything, mock.Anything, billing_entities.WebhookEventProcessed, "").Return(nil)

	subs := new(mockSubscriptionWriter)
	subs.On("Upsert", mock.Anything, mock.MatchedBy(func(s *billing_entities.BillingSubscription) bool {
		return s.UserID == userID && s.Status == billing_entities.SubscriptionStatusActive
	})).Return(nil)

	ents := new(mockEntitlementWriter)
	ents.On("Upsert", mock.Anything, mock.MatchedBy(func(e *billing_entities.UserEntitlement) bool {
		return e.PlanCode == billing_entities.PlanRivioPlus && !e.AdsEnabled
	})).Return(nil)

	u := newIngestUseCase(events, new(mockCustomerWriter), subs, ents)
	result, err := u.Handle(context.Background(), billing_in.IngestWebhookCommand{
		Provider: billing_entities.ProviderManual,
		RawBody:  raw,
	})

	assert.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.True(t, result.Processed)
	subs.AssertExpectations(t)
	ents.AssertExpectations(t)
}

func TestIngestWebhook_UnknownEventTypeIgnored(t *testing.T) {
	userID := uuid.New()
	raw := manualPayload(t, "evt_unknown", "customer.updated", userID, "FREE", "incomplete")

	events := new(mockWebhookEventWriter)
	events.On("TryInsert", mock.Anything, mock.Anything).Return(true, nil, nil)
	events.On("UpdateStatus", mock.Anything, mock.Anything, billing_entities.WebhookEventIgnored, "").Return(nil)

	u := newIngestUseCase(events, new(mockCustomerWriter), new(mockSubscriptionWriter), new(mockEntitlementWriter))
	result, err := u.Handle(context.Background(), billing_in.IngestWebhookCommand{
		Provider: billing_entities.ProviderManual,
		RawBody:  raw,
	})

	assert.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.False(t, result.Processed)
}
