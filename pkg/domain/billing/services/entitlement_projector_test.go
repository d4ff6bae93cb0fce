package billing_services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
	billing_services "github.com/rivio-api/rivio-api/pkg/domain/billing/services"
)

func TestProjectEntitlement_PlusWhileEntitlingStatus(t *testing.T) {
	end := time.Now().Add(30 * 24 * time.Hour)
	plan, ads, expires := billing_services.ProjectEntitlement(billing_entities.PlanRivioPlus, billing_entities.SubscriptionStatusActive, &end)

	assert.Equal(t, billing_entities.PlanRivioPlus, plan)
	assert.False(t, ads)
	assert.Equal(t, &end, expires)
}

func TestProjectEntitlement_FreeWhenCanceled(t *testing.T) {
	end := time.Now().Add(30 * 24 * time.Hour)
	plan, ads, expires := billing_services.ProjectEntitlement(billing_entities.PlanRivioPlus, billing_entities.SubscriptionStatusCanceled, &end)

	assert.Equal(t, billing_entities.PlanFree, plan)
	assert.True(t, ads)
	assert.Nil(t, expires)
}
