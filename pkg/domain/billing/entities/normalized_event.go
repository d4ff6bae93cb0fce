package billing_entities

// EventKind groups provider-specific event types into the dispatch buckets
// the entitlement projector acts on.
type EventKind string

const (
	EventKindSubscriptionUpserted EventKind = "subscription_upserted"
	EventKindSubscriptionCanceled EventKind = "subscription_canceled"
	EventKindUnknown              EventKind = "unknown"
)

// subscriptionUpsertTypes and subscriptionCancelTypes classify the raw
// provider event type string (e.g. Stripe's "invoice.paid") into a
// NormalizedEvent.Kind, independent of which provider emitted it.
var subscriptionUpsertTypes = map[string]bool{
	"subscription.created": true,
	"subscription.updated": true,
	"subscription.renewed": true,
	"invoice.paid":          true,
}

var subscriptionCancelTypes = map[string]bool{
	"subscription.deleted":        true,
	"subscription.canceled":       true,
	"invoice.payment_failed":      true,
}

func ClassifyEventType(eventType string) EventKind {
	if subscriptionUpsertTypes[eventType] {
		return EventKindSubscriptionUpserted
	}
	if subscriptionCancelTypes[eventType] {
		return EventKindSubscriptionCanceled
	}
	return EventKindUnknown
}

// NormalizedEvent is the provider-agnostic shape every inbound webhook is
// reduced to before dispatch.
type NormalizedEvent struct {
	ID                     string
	Type                   string
	UserID                 string
	ProviderCustomerID     string
	ProviderSubscriptionID string
	PlanCode               PlanCode
	Status                 SubscriptionStatus
	CurrentPeriodStartUnix int64
	CurrentPeriodEndUnix   int64
	PurchaseToken          string
	Raw                    []byte
}

func (e NormalizedEvent) Kind() EventKind {
	return ClassifyEventType(e.Type)
}
