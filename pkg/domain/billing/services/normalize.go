package billing_services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
)

// genericPayload is the envelope shared by Stripe (post-ConstructEvent,
// re-marshaled) and manual test payloads: `{id, type, data: {...}}`.
type genericPayload struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type genericSubscriptionData struct {
	UserID                 string `json:"user_id"`
	ProviderCustomerID     string `json:"provider_customer_id"`
	ProviderSubscriptionID string `json:"provider_subscription_id"`
	PlanCode               string `json:"plan_code"`
	Status                 string `json:"status"`
	CancelAtPeriodEnd      bool   `json:"cancel_at_period_end"`
	CurrentPeriodStart     string `json:"current_period_start"`
	CurrentPeriodEnd       string `json:"current_period_end"`
	PurchaseToken          string `json:"purchase_token"`
}

// GenericNormalizer implements billing_out.WebhookNormalizer for Stripe
// (after signature verification peels off the Stripe envelope) and for
// manual/test submissions — both speak the same `{id,type,data}` JSON
// shape.
type GenericNormalizer struct{}

func NewGenericNormalizer() *GenericNormalizer {
	return &GenericNormalizer{}
}

func (n *GenericNormalizer) Normalize(rawBody []byte, _ map[string]string) (*billing_entities.NormalizedEvent, error) {
	var env genericPayload
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return nil, err
	}

	var data genericSubscriptionData
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &data)
	}

	plan := strings.ToUpper(strings.TrimSpace(data.PlanCode))
	if plan == "" {
		plan = string(billing_entities.PlanFree)
	}
	status := strings.ToLower(strings.TrimSpace(data.Status))
	if status == "" {
		status = string(billing_entities.SubscriptionStatusIncomplete)
	}

	event := &billing_entities.NormalizedEvent{
		ID:                     strings.TrimSpace(env.ID),
		Type:                   strings.TrimSpace(env.Type),
		UserID:                 normalizeUUID(data.UserID),
		ProviderCustomerID:     data.ProviderCustomerID,
		ProviderSubscriptionID: data.ProviderSubscriptionID,
		PlanCode:               billing_entities.PlanCode(plan),
		Status:                 billing_entities.SubscriptionStatus(status),
		PurchaseToken:          data.PurchaseToken,
		Raw:                    rawBody,
	}
	if ts := parseTimeLoose(data.CurrentPeriodStart); ts != nil {
		event.CurrentPeriodStartUnix = ts.Unix()
	}
	if te := parseTimeLoose(data.CurrentPeriodEnd); te != nil {
		event.CurrentPeriodEndUnix = te.Unix()
	}
	return event, nil
}

func normalizeUUID(raw string) string {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return id.String()
}

func parseTimeLoose(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
