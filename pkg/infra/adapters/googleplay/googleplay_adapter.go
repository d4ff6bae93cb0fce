// Package googleplay implements Google Play subscriptionsv2 receipt
// validation via a service-account JWT exchange.
package googleplay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

const (
	tokenURI     = "https://oauth2.googleapis.com/token"
	publisherAPI = "https://androidpublisher.googleapis.com/androidpublisher/v3"
	scope        = "https://www.googleapis.com/auth/androidpublisher"
)

// serviceAccount is the subset of a Google service-account JSON key file
// this adapter needs to mint a signed JWT assertion.
type serviceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Adapter implements billing_out.ReceiptValidator against the
// purchases.subscriptionsv2 API: exchange a signed service-account JWT for
// an OAuth access token, then fetch the subscription state and map
// subscriptionState to the internal status vocabulary.
type Adapter struct {
	PackageName string
	account     serviceAccount
	privateKey  interface{}
	HTTPClient  *http.Client
}

func NewAdapter(serviceAccountJSON, packageName string) (*Adapter, error) {
	var acct serviceAccount
	if err := json.Unmarshal([]byte(serviceAccountJSON), &acct); err != nil {
		return nil, fmt.Errorf("invalid google play service account json: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(acct.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("invalid google play service account private key: %w", err)
	}
	return &Adapter{
		PackageName: packageName,
		account:     acct,
		privateKey:  key,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

var stateToStatus = map[string]billing_entities.SubscriptionStatus{
	"SUBSCRIPTION_STATE_ACTIVE":          billing_entities.SubscriptionStatusActive,
	"SUBSCRIPTION_STATE_IN_GRACE_PERIOD": billing_entities.SubscriptionStatusPastDue,
	"SUBSCRIPTION_STATE_ON_HOLD":         billing_entities.SubscriptionStatusPastDue,
	"SUBSCRIPTION_STATE_PAUSED":          billing_entities.SubscriptionStatusPastDue,
	"SUBSCRIPTION_STATE_PENDING":         billing_entities.SubscriptionStatusIncomplete,
	"SUBSCRIPTION_STATE_CANCELED":        billing_entities.SubscriptionStatusCanceled,
	"SUBSCRIPTION_STATE_EXPIRED":         billing_entities.SubscriptionStatusCanceled,
}

type subscriptionV2Response struct {
	SubscriptionState string `json:"subscriptionState"`
	LatestOrderID     string `json:"latestOrderId"`
	LineItems         []struct {
		ProductID  string `json:"productId"`
		ExpiryTime string `json:"expiryTime"`
	} `json:"lineItems"`
}

func (a *Adapter) Validate(ctx context.Context, purchaseToken string) (*billing_out.ReceiptResult, error) {
	accessToken, err := a.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/applications/%s/purchases/subscriptionsv2/tokens/%s",
		publisherAPI, url.PathEscape(a.PackageName), url.PathEscape(purchaseToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded subscriptionV2Response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode google play response: %w", err)
	}
	if len(decoded.LineItems) == 0 {
		return nil, fmt.Errorf("google play returned no lineItems for purchase")
	}

	latest := latestLineItem(decoded.LineItems)
	var expiresAt *time.Time
	if t, err := time.Parse(time.RFC3339, latest.ExpiryTime); err == nil {
		t = t.UTC()
		expiresAt = &t
	}

	status, ok := stateToStatus[decoded.SubscriptionState]
	if !ok {
		status = billing_entities.SubscriptionStatusIncomplete
	}

	subscriptionID := decoded.LatestOrderID
	if subscriptionID == "" {
		subscriptionID = purchaseToken
	}

	return &billing_out.ReceiptResult{
		ProviderSubscriptionID: subscriptionID,
		PlanCode:               billing_entities.PlanRivioPlus,
		Status:                 status,
		ExpiresAt:              expiresAt,
		PurchaseToken:          purchaseToken,
	}, nil
}

func latestLineItem(items []struct {
	ProductID  string `json:"productId"`
	ExpiryTime string `json:"expiryTime"`
}) struct {
	ProductID  string `json:"productId"`
	ExpiryTime string `json:"expiryTime"`
} {
	best := items[0]
	bestExpiry, _ := time.Parse(time.RFC3339, best.ExpiryTime)
	for _, item := range items[1:] {
		expiry, err := time.Parse(time.RFC3339, item.ExpiryTime)
		if err == nil && expiry.After(bestExpiry) {
			best = item
			bestExpiry = expiry
		}
	}
	return best
}

func (a *Adapter) accessToken(ctx context.Context) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"iss":   a.account.ClientEmail,
		"scope": scope,
		"aud":   tokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	assertion, err := token.SignedString(a.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign google play jwt assertion: %w", err)
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode google oauth response: %w", err)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("google play token exchange returned no access_token")
	}
	return decoded.AccessToken, nil
}

var _ billing_out.ReceiptValidator = (*Adapter)(nil)
