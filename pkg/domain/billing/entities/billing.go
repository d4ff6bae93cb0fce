package billing_entities

import (
	"time"

	"github.com/google/uuid"
)

// Provider enumerates the billing backends that can emit webhooks or
// receipts.
type Provider string

const (
	ProviderNone       Provider = "none"
	ProviderStripe     Provider = "stripe"
	ProviderAppStore   Provider = "app_store"
	ProviderGooglePlay Provider = "google_play"
	ProviderManual     Provider = "manual"
)

// PlanCode enumerates the entitlement tiers.
type PlanCode string

const (
	PlanFree      PlanCode = "FREE"
	PlanRivioPlus PlanCode = "RIVIO_PLUS"
)

// SubscriptionStatus mirrors the provider-neutral status vocabulary
// defines.
type SubscriptionStatus string

const (
	SubscriptionStatusTrialing           SubscriptionStatus = "trialing"
	SubscriptionStatusActive             SubscriptionStatus = "active"
	SubscriptionStatusPastDue            SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled           SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete         SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired  SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusUnpaid             SubscriptionStatus = "unpaid"
)

// EntitlingStatuses is the set of subscription statuses that project to
// PLUS.
var EntitlingStatuses = map[SubscriptionStatus]bool{
	SubscriptionStatusTrialing: true,
	SubscriptionStatusActive:   true,
	SubscriptionStatusPastDue:  true,
}

// WebhookEventStatus tracks processing outcome for an ingested webhook.
type WebhookEventStatus string

const (
	WebhookEventReceived  WebhookEventStatus = "received"
	WebhookEventProcessed WebhookEventStatus = "processed"
	WebhookEventIgnored   WebhookEventStatus = "ignored"
	WebhookEventError     WebhookEventStatus = "error"
)

// BillingCustomer is 1:1 with a user per provider.
type BillingCustomer struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	Provider           Provider  `json:"provider" db:"provider"`
	ProviderCustomerID string    `json:"provider_customer_id" db:"provider_customer_id"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

func NewBillingCustomer(userID uuid.UUID, provider Provider, providerCustomerID string) *BillingCustomer {
	now := time.Now().UTC()
	return &BillingCustomer{
		ID:                 uuid.New(),
		UserID:             userID,
		Provider:           provider,
		ProviderCustomerID: providerCustomerID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// BillingSubscription is unique on (provider, provider_subscription_id).
type BillingSubscription struct {
	ID                   uuid.UUID          `json:"id" db:"id"`
	UserID               uuid.UUID          `json:"user_id" db:"user_id"`
	Provider             Provider           `json:"provider" db:"provider"`
	ProviderSubscriptionID string           `json:"provider_subscription_id" db:"provider_subscription_id"`
	PlanCode             PlanCode           `json:"plan_code" db:"plan_code"`
	Status               SubscriptionStatus `json:"status" db:"status"`
	CurrentPeriodStart    *time.Time        `json:"current_period_start,omitempty" db:"current_period_start"`
	CurrentPeriodEnd      *time.Time        `json:"current_period_end,omitempty" db:"current_period_end"`
	CancelAtPeriodEnd     bool              `json:"cancel_at_period_end" db:"cancel_at_period_end"`
	RawPayload            []byte            `json:"raw_payload,omitempty" db:"raw_payload"`
	CreatedAt             time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at" db:"updated_at"`
}

// MarkCanceled applies the forced-cancellation transition // step 5 describes for subscription.{deleted,canceled} / invoice.payment_failed.
func (s *BillingSubscription) MarkCanceled(now time.Time) {
	s.Status = SubscriptionStatusCanceled
	s.CancelAtPeriodEnd = true
	s.UpdatedAt = now
}

// BillingWebhookEvent records at-most-once processing for a provider event.
type BillingWebhookEvent struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	Provider   Provider           `json:"provider" db:"provider"`
	EventID    string             `json:"event_id" db:"event_id"`
	Type       string             `json:"type" db:"type"`
	UserID     *uuid.UUID         `json:"user_id,omitempty" db:"user_id"`
	RawPayload []byte             `json:"raw_payload" db:"raw_payload"`
	Status     WebhookEventStatus `json:"status" db:"status"`
	Error      string             `json:"error,omitempty" db:"error"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`
}

func NewBillingWebhookEvent(provider Provider, eventID, eventType string, userID *uuid.UUID, rawPayload []byte) *BillingWebhookEvent {
	now := time.Now().UTC()
	return &BillingWebhookEvent{
		ID:         uuid.New(),
		Provider:   provider,
		EventID:    eventID,
		Type:       eventType,
		UserID:     userID,
		RawPayload: rawPayload,
		Status:     WebhookEventReceived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UserEntitlement is the 1:1 projected capability snapshot /§4.7
// describe. Invariant: PlanCode==RIVIO_PLUS ⇒ AdsEnabled==false; FREE ⇒
// AdsEnabled==true.
type UserEntitlement struct {
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	PlanCode   PlanCode   `json:"plan_code" db:"plan_code"`
	AdsEnabled bool       `json:"ads_enabled" db:"ads_enabled"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// NewFreeEntitlement is the default entitlement for a user with no paid
// subscription history.
func NewFreeEntitlement(userID uuid.UUID) *UserEntitlement {
	return &UserEntitlement{
		UserID:     userID,
		PlanCode:   PlanFree,
		AdsEnabled: true,
		UpdatedAt:  time.Now().UTC(),
	}
}
