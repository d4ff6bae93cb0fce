package query

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
)

// BillingQueryController handles GET /me/entitlement.
type BillingQueryController struct {
	helper *controllers.ControllerHelper

	getEntitlement billing_in.GetEntitlementQueryHandler
}

func NewBillingQueryController(c container.Container) *BillingQueryController {
	ctl := &BillingQueryController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.getEntitlement); err != nil {
		panic(err)
	}
	return ctl
}

func (ctl *BillingQueryController) GetMyEntitlement(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		entitlement, err := ctl.getEntitlement.Handle(r.Context(), billing_in.GetEntitlementQuery{UserID: userID})
		if ctl.helper.HandleError(w, r, err, "get entitlement") {
			return
		}
		ctl.helper.WriteOK(w, r, entitlement)
	}
}
