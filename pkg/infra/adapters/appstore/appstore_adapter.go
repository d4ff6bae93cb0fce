// Package appstore implements Apple App Store server-side receipt
// validation.
package appstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

const (
	verifyURLProduction = "https://buy.itunes.apple.com/verifyReceipt"
	verifyURLSandbox     = "https://sandbox.itunes.apple.com/verifyReceipt"
	statusSandboxReceiptSentToProd = 21007
)

// Adapter implements billing_out.ReceiptValidator against Apple's legacy
// verifyReceipt endpoint: POST the shared secret alongside the base64
// receipt, retry against the sandbox host on status=21007,
// and select the transaction with the highest expires_date_ms.
type Adapter struct {
	SharedSecret string
	Sandbox      bool
	HTTPClient   *http.Client
}

func NewAdapter(sharedSecret string, sandbox bool) *Adapter {
	return &Adapter{SharedSecret: sharedSecret, Sandbox: sandbox, HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

type verifyReceiptRequest struct {
	ReceiptData           string `json:"receipt-data"`
	Password              string `json:"password"`
	ExcludeOldTransactions bool  `json:"exclude-old-transactions"`
}

type verifyReceiptResponse struct {
	Status             int                      `json:"status"`
	LatestReceiptInfo  []map[string]interface{} `json:"latest_receipt_info"`
	Receipt            map[string]interface{}   `json:"receipt"`
}

func (a *Adapter) Validate(ctx context.Context, receipt string) (*billing_out.ReceiptResult, error) {
	if a.SharedSecret == "" {
		return nil, fmt.Errorf("app store shared secret not configured")
	}

	url := verifyURLProduction
	if a.Sandbox {
		url = verifyURLSandbox
	}

	resp, err := a.postVerify(ctx, url, receipt)
	if err != nil {
		return nil, err
	}
	if !a.Sandbox && resp.Status == statusSandboxReceiptSentToProd {
		resp, err = a.postVerify(ctx, verifyURLSandbox, receipt)
		if err != nil {
			return nil, err
		}
	}
	if resp.Status != 0 {
		return nil, fmt.Errorf("app store verifyReceipt rejected receipt (status=%d)", resp.Status)
	}

	transactions := resp.LatestReceiptInfo
	if len(transactions) == 0 && resp.Receipt != nil {
		if inApp, ok := resp.Receipt["in_app"].([]interface{}); ok {
			for _, raw := range inApp {
				if m, ok := raw.(map[string]interface{}); ok {
					transactions = append(transactions, m)
				}
			}
		}
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("no subscription transactions found in app store receipt")
	}

	latest := latestByExpiry(transactions)
	subscriptionID := stringField(latest, "original_transaction_id")
	if subscriptionID == "" {
		subscriptionID = stringField(latest, "transaction_id")
	}
	expiresAt := msField(latest, "expires_date_ms")

	status := billing_entities.SubscriptionStatusCanceled
	if expiresAt != nil && expiresAt.After(time.Now().UTC()) && latest["cancellation_date"] == nil {
		status = billing_entities.SubscriptionStatusActive
	}

	return &billing_out.ReceiptResult{
		ProviderSubscriptionID: subscriptionID,
		PlanCode:               billing_entities.PlanRivioPlus,
		Status:                 status,
		ExpiresAt:              expiresAt,
	}, nil
}

func (a *Adapter) postVerify(ctx context.Context, url, receipt string) (*verifyReceiptResponse, error) {
	body, err := json.Marshal(verifyReceiptRequest{
		ReceiptData:            receipt,
		Password:               a.SharedSecret,
		ExcludeOldTransactions: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded verifyReceiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode app store response: %w", err)
	}
	return &decoded, nil
}

func latestByExpiry(transactions []map[string]interface{}) map[string]interface{} {
	var best map[string]interface{}
	var bestExpiry int64
	for _, tx := range transactions {
		expiry := int64Field(tx, "expires_date_ms")
		if best == nil || expiry > bestExpiry {
			best = tx
			bestExpiry = expiry
		}
	}
	return best
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func int64Field(m map[string]interface{}, key string) int64 {
	switch v := m[key].(type) {
	case string:
		var out int64
		fmt.Sscanf(v, "%d", &out)
		return out
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func msField(m map[string]interface{}, key string) *time.Time {
	ms := int64Field(m, key)
	if ms == 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}

var _ billing_out.ReceiptValidator = (*Adapter)(nil)
