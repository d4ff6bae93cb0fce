// Package stripe provides the Stripe billing provider adapter implementation.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkoutsession"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/webhook"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

const signatureHeaderKey = "Stripe-Signature"

// StripeAdapter implements billing_out.WebhookNormalizer for the Stripe
// provider. Unlike the generic `X-Billing-Signature` providers, Stripe
// verifies and parses its webhook envelope in one stripe-go call —
// webhook.ConstructEvent already implements the `t=…,v1=…` HMAC scheme
// step 2 describes, so Normalize performs verification
// itself rather than delegating to billing_services.HMACSignatureVerifier.
type StripeAdapter struct {
	webhookSecret string
}

func NewStripeAdapter() *StripeAdapter {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &StripeAdapter{
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}
}

// Normalize verifies the Stripe-Signature header via stripe-go and reduces
// the subscription/invoice event into the shared NormalizedEvent shape.
func (s *StripeAdapter) Normalize(rawBody []byte, headers map[string]string) (*billing_entities.NormalizedEvent, error) {
	event, err := webhook.ConstructEvent(rawBody, headers[signatureHeaderKey], s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe webhook signature invalid: %w", err)
	}

	normalized := &billing_entities.NormalizedEvent{
		ID:   event.ID,
		Type: string(event.Type),
		Raw:  rawBody,
	}

	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated", "invoice.paid":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse stripe subscription: %w", err)
		}
		populateFromStripeSubscription(normalized, &sub)
		if normalized.Type == "invoice.paid" {
			normalized.Type = "subscription.renewed"
		} else if event.Type == "customer.subscription.created" {
			normalized.Type = "subscription.created"
		} else {
			normalized.Type = "subscription.updated"
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse stripe subscription: %w", err)
		}
		populateFromStripeSubscription(normalized, &sub)
		normalized.Type = "subscription.deleted"

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("failed to parse stripe invoice: %w", err)
		}
		if inv.Subscription != nil {
			normalized.ProviderSubscriptionID = inv.Subscription.ID
		}
		if inv.Customer != nil {
			normalized.ProviderCustomerID = inv.Customer.ID
			normalized.UserID = inv.Customer.Metadata["user_id"]
		}
		normalized.Type = "invoice.payment_failed"

	default:
		// Unknown event types still normalize — the use case marks them
		// 'ignored' rather than failing the whole ingest.
	}

	return normalized, nil
}

func populateFromStripeSubscription(normalized *billing_entities.NormalizedEvent, sub *stripe.Subscription) {
	normalized.ProviderSubscriptionID = sub.ID
	normalized.Status = billing_entities.SubscriptionStatus(string(sub.Status))
	normalized.CurrentPeriodStartUnix = sub.CurrentPeriodStart
	normalized.CurrentPeriodEndUnix = sub.CurrentPeriodEnd
	if sub.Customer != nil {
		normalized.ProviderCustomerID = sub.Customer.ID
		normalized.UserID = sub.Customer.Metadata["user_id"]
	}
	if plan, ok := sub.Metadata["plan_code"]; ok {
		normalized.PlanCode = billing_entities.PlanCode(plan)
	} else {
		normalized.PlanCode = billing_entities.PlanRivioPlus
	}
}

// CreateOrGetCustomer resolves a Stripe customer by email, creating one on
// first checkout.
func (s *StripeAdapter) CreateOrGetCustomer(ctx context.Context, email, userID string) (string, error) {
	searchParams := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{Query: fmt.Sprintf("email:'%s'", email)},
	}
	iter := customer.Search(searchParams)
	for iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to search stripe customers: %w", err)
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.AddMetadata("user_id", userID)
	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}
	return c.ID, nil
}

// CreateCheckoutSession starts a Stripe Checkout session for a plan
// upgrade.
func (s *StripeAdapter) CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL string) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customerID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
	}
	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create stripe checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}

var _ billing_out.WebhookNormalizer = (*StripeAdapter)(nil)
