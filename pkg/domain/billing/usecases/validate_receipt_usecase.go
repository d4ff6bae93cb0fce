package billing_usecases

import (
	"time"

	"context"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
	billing_out "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/out"
	billing_services "github.com/rivio-api/rivio-api/pkg/domain/billing/services"
	"github.com/google/uuid"
)

// ValidateReceiptUseCase implements billing_in.ValidateReceiptCommandHandler
//. The store response is
// normalized by the provider-specific ReceiptValidator into the same
// ReceiptResult shape the webhook path already projects from.
type ValidateReceiptUseCase struct {
	Validators    map[billing_entities.Provider]billing_out.ReceiptValidator
	Subscriptions billing_out.BillingSubscriptionWriter
	Entitlements  billing_out.UserEntitlementWriter
}

func NewValidateReceiptUseCase(
	validators map[billing_entities.Provider]billing_out.ReceiptValidator,
	subscriptions billing_out.BillingSubscriptionWriter,
	entitlements billing_out.UserEntitlementWriter,
) *ValidateReceiptUseCase {
	return &ValidateReceiptUseCase{
		Validators:    validators,
		Subscriptions: subscriptions,
		Entitlements:  entitlements,
	}
}

func (u *ValidateReceiptUseCase) Handle(ctx context.Context, cmd billing_in.ValidateReceiptCommand) (*billing_entities.UserEntitlement, error) {
	validator, ok := u.Validators[cmd.Provider]
	if !ok {
		return nil, common.NewErrBadRequest("unsupported receipt provider")
	}

	result, err := validator.Validate(ctx, cmd.Receipt)
	if err != nil {
		return nil, common.NewErrUnavailable("receipt validation provider unreachable")
	}

	now := time.Now().UTC()
	sub := &billing_entities.BillingSubscription{
		ID:                     uuid.New(),
		UserID:                 cmd.UserID,
		Provider:               cmd.Provider,
		ProviderSubscriptionID: result.ProviderSubscriptionID,
		PlanCode:               result.PlanCode,
		Status:                 result.Status,
		CurrentPeriodEnd:       result.ExpiresAt,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := u.Subscriptions.Upsert(ctx, sub); err != nil {
		return nil, err
	}

	plan, ads, expires := billing_services.ProjectEntitlement(result.PlanCode, result.Status, result.ExpiresAt)
	entitlement := &billing_entities.UserEntitlement{
		UserID:     cmd.UserID,
		PlanCode:   plan,
		AdsEnabled: ads,
		ExpiresAt:  expires,
		UpdatedAt:  now,
	}
	if err := u.Entitlements.Upsert(ctx, entitlement); err != nil {
		return nil, err
	}
	return entitlement, nil
}
