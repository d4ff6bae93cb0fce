package billing_usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
	billing_services "github.com/rivio-api/rivio-api/pkg/domain/billing/services"
)

// IngestWebhookUseCase implements billing_in.IngestWebhookCommandHandler.
type IngestWebhookUseCase struct {
	Normalizers      map[billing_entities.Provider]billing_out.WebhookNormalizer
	Verifier         billing_out.WebhookSignatureVerifier
	Secrets          map[billing_entities.Provider]string
	RequireSignature bool
	MaxAge           time.Duration
	Events           billing_out.BillingWebhookEventWriter
	Customers        billing_out.BillingCustomerWriter
	Subscriptions    billing_out.BillingSubscriptionWriter
	SubscriptionsR   billing_out.BillingSubscriptionReader
	Entitlements     billing_out.UserEntitlementWriter
}

func NewIngestWebhookUseCase(
	normalizers map[billing_entities.Provider]billing_out.WebhookNormalizer,
	verifier billing_out.WebhookSignatureVerifier,
	secrets map[billing_entities.Provider]string,
	requireSignature bool,
	maxAge time.Duration,
	events billing_out.BillingWebhookEventWriter,
	customers billing_out.BillingCustomerWriter,
	subscriptions billing_out.BillingSubscriptionWriter,
	subscriptionsR billing_out.BillingSubscriptionReader,
	entitlements billing_out.UserEntitlementWriter,
) *IngestWebhookUseCase {
	return &IngestWebhookUseCase{
		Normalizers:      normalizers,
		Verifier:         verifier,
		Secrets:          secrets,
		RequireSignature: requireSignature,
		MaxAge:           maxAge,
		Events:           events,
		Customers:        customers,
		Subscriptions:    subscriptions,
		SubscriptionsR:   subscriptionsR,
		Entitlements:     entitlements,
	}
}

func (u *IngestWebhookUseCase) Handle(ctx context.Context, cmd billing_in.IngestWebhookCommand) (*billing_in.IngestWebhookResult, error) {
	normalizer, ok := u.Normalizers[cmd.Provider]
	if !ok {
		return nil, common.NewErrBadRequest("unsupported billing provider")
	}

	// Stripe verifies its own `t=…,v1=…` header inside Normalize via
	// stripe-go's webhook.ConstructEvent; every other provider is verified
	// here against the shared HMAC scheme.
	if cmd.Provider != billing_entities.ProviderStripe {
		secret := u.Secrets[cmd.Provider]
		if u.RequireSignature {
			if err := u.Verifier.Verify(cmd.RawBody, cmd.SignatureHeader, secret, u.MaxAge, time.Now().UTC()); err != nil {
				return nil, err
			}
		} else if secret != "" && cmd.SignatureHeader != "" {
			// Best-effort verification even when not strictly required, so a
			// present-but-wrong signature is still rejected.
			if err := u.Verifier.Verify(cmd.RawBody, cmd.SignatureHeader, secret, u.MaxAge, time.Now().UTC()); err != nil {
				return nil, err
			}
		}
	}

	event, err := normalizer.Normalize(cmd.RawBody, cmd.Headers)
	if err != nil || event.ID == "" || event.Type == "" {
		return nil, common.NewErrBadRequest("invalid webhook payload")
	}

	userID := u.resolveUserID(ctx, cmd.Provider, event)

	webhookEvent := billing_entities.NewBillingWebhookEvent(cmd.Provider, event.ID, event.Type, userID, cmd.RawBody)
	inserted, existing, err := u.Events.TryInsert(ctx, webhookEvent)
	if err != nil {
		return nil, err
	}
	if !inserted {
		processed := existing != nil &&
			(existing.Status == billing_entities.WebhookEventProcessed || existing.Status == billing_entities.WebhookEventIgnored)
		return &billing_in.IngestWebhookResult{Duplicate: true, Processed: processed}, nil
	}

	processed, finalStatus, errMsg := u.dispatch(ctx, cmd.Provider, event, userID)
	if updErr := u.Events.UpdateStatus(ctx, webhookEvent.ID, finalStatus, errMsg); updErr != nil {
		return nil, updErr
	}

	return &billing_in.IngestWebhookResult{Duplicate: false, Processed: processed}, nil
}

// resolveUserID implements step 4: prefer the event's own
// user_id, else look up an existing subscription by (provider,
// provider_subscription_id) or by purchase token.
func (u *IngestWebhookUseCase) resolveUserID(ctx context.Context, provider billing_entities.Provider, event *billing_entities.NormalizedEvent) *uuid.UUID {
	if id, err := uuid.Parse(event.UserID); err == nil {
		return &id
	}
	if u.SubscriptionsR == nil {
		return nil
	}
	if event.ProviderSubscriptionID != "" {
		if sub, err := u.SubscriptionsR.FindByProviderSubscription(ctx, provider, event.ProviderSubscriptionID); err == nil && sub != nil {
			return &sub.UserID
		}
	}
	if event.PurchaseToken != "" {
		if sub, err := u.SubscriptionsR.FindByPurchaseToken(ctx, provider, event.PurchaseToken); err == nil && sub != nil {
			return &sub.UserID
		}
	}
	return nil
}

func (u *IngestWebhookUseCase) dispatch(ctx context.Context, provider billing_entities.Provider, event *billing_entities.NormalizedEvent, userID *uuid.UUID) (bool, billing_entities.WebhookEventStatus, string) {
	if userID == nil || event.ProviderSubscriptionID == "" {
		return false, billing_entities.WebhookEventIgnored, ""
	}

	switch event.Kind() {
	case billing_entities.EventKindSubscriptionUpserted:
		if err := u.applySubscriptionState(ctx, *userID, provider, event, event.PlanCode, event.Status, false); err != nil {
			return false, billing_entities.WebhookEventError, truncate(err.Error(), 1000)
		}
		return true, billing_entities.WebhookEventProcessed, ""
	case billing_entities.EventKindSubscriptionCanceled:
		if err := u.applySubscriptionState(ctx, *userID, provider, event, event.PlanCode, billing_entities.SubscriptionStatusCanceled, true); err != nil {
			return false, billing_entities.WebhookEventError, truncate(err.Error(), 1000)
		}
		return true, billing_entities.WebhookEventProcessed, ""
	default:
		return false, billing_entities.WebhookEventIgnored, ""
	}
}

func (u *IngestWebhookUseCase) applySubscriptionState(
	ctx context.Context,
	userID uuid.UUID,
	provider billing_entities.Provider,
	event *billing_entities.NormalizedEvent,
	planCode billing_entities.PlanCode,
	status billing_entities.SubscriptionStatus,
	cancelAtPeriodEnd bool,
) error {
	now := time.Now().UTC()

	if event.ProviderCustomerID != "" {
		customer := billing_entities.NewBillingCustomer(userID, provider, event.ProviderCustomerID)
		if err := u.Customers.Upsert(ctx, customer); err != nil {
			return err
		}
	}

	var periodStart, periodEnd *time.Time
	if event.CurrentPeriodStartUnix > 0 {
		t := time.Unix(event.CurrentPeriodStartUnix, 0).UTC()
		periodStart = &t
	}
	if event.CurrentPeriodEndUnix > 0 {
		t := time.Unix(event.CurrentPeriodEndUnix, 0).UTC()
		periodEnd = &t
	}

	sub := &billing_entities.BillingSubscription{
		ID:                     uuid.New(),
		UserID:                 userID,
		Provider:               provider,
		ProviderSubscriptionID: event.ProviderSubscriptionID,
		PlanCode:               planCode,
		Status:                 status,
		CurrentPeriodStart:     periodStart,
		CurrentPeriodEnd:       periodEnd,
		CancelAtPeriodEnd:      cancelAtPeriodEnd,
		RawPayload:             event.Raw,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := u.Subscriptions.Upsert(ctx, sub); err != nil {
		return err
	}

	ent, ads, expires := billing_services.ProjectEntitlement(planCode, status, periodEnd)
	entitlement := &billing_entities.UserEntitlement{
		UserID:     userID,
		PlanCode:   ent,
		AdsEnabled: ads,
		ExpiresAt:  expires,
		UpdatedAt:  now,
	}
	return u.Entitlements.Upsert(ctx, entitlement)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
