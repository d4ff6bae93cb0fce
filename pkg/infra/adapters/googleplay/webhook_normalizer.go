package googleplay

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

// rtdnNotificationTypeToEventType maps Google Play Real-Time Developer
// Notification subscriptionNotification.notificationType integers into
// the shared dispatch vocabulary.
var rtdnNotificationTypeToEventType = map[int]string{
	1:  "subscription.renewed", // RECOVERED
	2:  "subscription.renewed", // RENEWED
	3:  "subscription.canceled",
	4:  "subscription.created", // PURCHASED
	5:  "invoice.payment_failed", // ON_HOLD
	6:  "subscription.updated", // IN_GRACE_PERIOD
	12: "subscription.canceled", // REVOKED
	13: "subscription.deleted", // EXPIRED
}

// WebhookNormalizer implements billing_out.WebhookNormalizer for Google
// Play RTDN: the Pub/Sub envelope carries `message.data` as base64 JSON.
type WebhookNormalizer struct{}

func NewWebhookNormalizer() *WebhookNormalizer {
	return &WebhookNormalizer{}
}

type pubsubEnvelope struct {
	Message struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}

type developerNotification struct {
	PackageName              string `json:"packageName"`
	SubscriptionNotification struct {
		Version          string `json:"version"`
		NotificationType int    `json:"notificationType"`
		PurchaseToken    string `json:"purchaseToken"`
		SubscriptionID   string `json:"subscriptionId"`
	} `json:"subscriptionNotification"`
}

func (n *WebhookNormalizer) Normalize(rawBody []byte, _ map[string]string) (*billing_entities.NormalizedEvent, error) {
	var envelope pubsubEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return nil, fmt.Errorf("invalid google play pubsub envelope: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode google play message.data: %w", err)
	}

	var notif developerNotification
	if err := json.Unmarshal(decoded, &notif); err != nil {
		return nil, fmt.Errorf("failed to parse google play developer notification: %w", err)
	}

	eventType, ok := rtdnNotificationTypeToEventType[notif.SubscriptionNotification.NotificationType]
	if !ok {
		eventType = "google_play.unknown"
	}

	return &billing_entities.NormalizedEvent{
		ID:                     fmt.Sprintf("%s:%d", envelope.Message.MessageID, notif.SubscriptionNotification.NotificationType),
		Type:                   eventType,
		ProviderSubscriptionID: notif.SubscriptionNotification.SubscriptionID,
		PlanCode:               billing_entities.PlanRivioPlus,
		PurchaseToken:          notif.SubscriptionNotification.PurchaseToken,
		Raw:                    rawBody,
	}, nil
}

var _ billing_out.WebhookNormalizer = (*WebhookNormalizer)(nil)
