package billing_usecases

import (
	"context"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
)

// GetEntitlementUseCase implements billing_in.GetEntitlementQueryHandler
//. A user with no projected row yet is
// implicitly FREE.
type GetEntitlementUseCase struct {
	Entitlements billing_out.UserEntitlementReader
}

func NewGetEntitlementUseCase(entitlements billing_out.UserEntitlementReader) *GetEntitlementUseCase {
	return &GetEntitlementUseCase{Entitlements: entitlements}
}

func (u *GetEntitlementUseCase) Handle(ctx context.Context, query billing_in.GetEntitlementQuery) (*billing_entities.UserEntitlement, error) {
	ent, err := u.Entitlements.FindByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return billing_entities.NewFreeEntitlement(query.UserID), nil
	}
	return ent, nil
}
