package billing_usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_in "github.com/rivio-api/rivio-api/pkg/domain/billing/ports/in"
	billing_usecases "github.com/rivio-api/rivio-api/pkg/domain/billing/usecases"
)

func TestGetEntitlement_DefaultsToFreeWhenNoRowProjected(t *testing.T) {
	userID := uuid.New()
	ents := new(mockEntitlementReader)
	ents.On("FindByUser", mock.Anything, userID).Return(nil, nil)

	u := billing_usecases.NewGetEntitlementUseCase(ents)
	result, err := u.Handle(context.Background(), billing_in.GetEntitlementQuery{UserID: userID})

	assert.NoError(t, err)
	assert.Equal(t, billing_entities.PlanFree, result.PlanCode)
	assert.True(t, result.AdsEnabled)
}

func TestGetEntitlement_ReturnsProjectedRow(t *testing.T) {
	userID := uuid.New()
	projected := &billing_entities.UserEntitlement{UserID: userID, PlanCode: billing_entities.PlanRivioPlus, AdsEnabled: false}
	ents := new(mockEntitlementReader)
	ents.On("FindByUser", mock.Anything, userID).Return(projected, nil)

	u := billing_usecases.NewGetEntitlementUseCase(ents)
	result, err := u.Handle(context.Background(), billing_in.GetEntitlementQuery{UserID: userID})

	assert.NoError(t, err)
	assert.Equal(t, billing_entities.PlanRivioPlus, result.PlanCode)
}
