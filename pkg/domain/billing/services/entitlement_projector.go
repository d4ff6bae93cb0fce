package billing_services

import (
	"time"

	billing_entities "github.com/rivio-api/rivio-api/pkg/domain/billing/entities"
)

// ProjectEntitlement implements the projection rule names:
// RIVIO_PLUS while status entitles PLUS, otherwise FREE with ads enabled
// and no expiry.
func ProjectEntitlement(planCode billing_entities.PlanCode, status billing_entities.SubscriptionStatus, currentPeriodEnd *time.Time) (billing_entities.PlanCode, bool, *time.Time) {
	if planCode == billing_entities.PlanRivioPlus && billing_entities.EntitlingStatuses[status] {
		return billing_entities.PlanRivioPlus, false, currentPeriodEnd
	}
	return billing_entities.PlanFree, true, nil
}
