package command

import (
	"context"
	"io"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/gorilla/mux"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
)

// BillingController handles provider webhooks and client receipt validation.
type BillingController struct {
	helper *controllers.ControllerHelper

	ingestWebhook    billing_in.IngestWebhookCommandHandler
	validateReceipt  billing_in.ValidateReceiptCommandHandler
}

func NewBillingController(c container.Container) *BillingController {
	ctl := &BillingController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.ingestWebhook); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.validateReceipt); err != nil {
		panic(err)
	}
	return ctl
}

// providerFromPath maps the {provider} route segment to billing_entities.Provider.
func providerFromPath(s string) billing_entities.Provider {
	switch s {
	case "stripe":
		return billing_entities.ProviderStripe
	case "app_store":
		return billing_entities.ProviderAppStore
	case "google_play":
		return billing_entities.ProviderGooglePlay
	default:
		return billing_entities.ProviderNone
	}
}

func (ctl *BillingController) IngestWebhook(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := providerFromPath(mux.Vars(r)["provider"])

		body, err := io.ReadAll(r.Body)
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "unable to read request body")
			return
		}

		headers := make(map[string]string, len(r.Header))
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}

		result, err := ctl.ingestWebhook.Handle(r.Context(), billing_in.IngestWebhookCommand{
			Provider:        provider,
			RawBody:         body,
			Headers:         headers,
			SignatureHeader: r.Header.Get("Stripe-Signature"),
		})
		if ctl.helper.HandleError(w, r, err, "ingest billing webhook") {
			return
		}
		ctl.helper.WriteOK(w, r, result)
	}
}

type validateReceiptRequest struct {
	Provider billing_entities.Provider `json:"provider"`
	Receipt  string                    `json:"receipt"`
}

func (ctl *BillingController) ValidateReceipt(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}

		var req validateReceiptRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		entitlement, err := ctl.validateReceipt.Handle(r.Context(), billing_in.ValidateReceiptCommand{
			UserID:   userID,
			Provider: req.Provider,
			Receipt:  req.Receipt,
		})
		if ctl.helper.HandleError(w, r, err, "validate receipt") {
			return
		}
		ctl.helper.WriteOK(w, r, entitlement)
	}
}
