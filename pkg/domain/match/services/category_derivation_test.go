package match_services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	match_services "github.com/rivio-api/rivio-api/pkg/domain/match/services"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

func TestDeriveLadder_FourMenIsHM(t *testing.T) {
	ladder, ok := match_services.DeriveLadder([4]profile_entities.Gender{
		profile_entities.GenderMale, profile_entities.GenderMale,
		profile_entities.GenderMale, profile_entities.GenderMale,
	})
	assert.True(t, ok)
	assert.Equal(t, profile_entities.LadderHM, ladder)
}

func TestDeriveLadder_FourWomenIsWM(t *testing.T) {
	ladder, ok := match_services.DeriveLadder([4]profile_entities.Gender{
		profile_entities.GenderFemale, profile_entities.GenderFemale,
		profile_entities.GenderFemale, profile_entities.GenderFemale,
	})
	assert.True(t, ok)
	assert.Equal(t, profile_entities.LadderWM, ladder)
}

func TestDeriveLadder_TwoAndTwoIsMX(t *testing.T) {
	ladder, ok := match_services.DeriveLadder([4]profile_entities.Gender{
		profile_entities.GenderMale, profile_entities.GenderMale,
		profile_entities.GenderFemale, profile_entities.GenderFemale,
	})
	assert.True(t, ok)
	assert.Equal(t, profile_entities.LadderMX, ladder)
}

func TestDeriveLadder_ThreeOneRejected(t *testing.T) {
	_, ok := match_services.DeriveLadder([4]profile_entities.Gender{
		profile_entities.GenderMale, profile_entities.GenderMale,
		profile_entities.GenderMale, profile_entities.GenderFemale,
	})
	assert.False(t, ok)
}

func TestDeriveCategory_PicksClosestToCeilMedian(t *testing.T) {
	categories := []*profile_entities.Category{
		{ID: uuid.New(), SortOrder: 1},
		{ID: uuid.New(), SortOrder: 2},
		{ID: uuid.New(), SortOrder: 3},
		{ID: uuid.New(), SortOrder: 4},
	}
	// sort_orders 1,2,3,4 -> median (2+3)/2=2.5 -> ceil=3
	result := match_services.DeriveCategory([4]int{1, 2, 3, 4}, categories)
	assert.Equal(t, 3, result.SortOrder)
}

func TestDeriveCategory_TieBreaksTowardSmallerSortOrder(t *testing.T) {
	categories := []*profile_entities.Category{
		{ID: uuid.New(), SortOrder: 2},
		{ID: uuid.New(), SortOrder: 4},
	}
	// target=3, both categories are distance 1 away -> prefer sort_order 2
	result := match_services.DeriveCategory([4]int{2, 2, 4, 4}, categories)
	assert.Equal(t, 2, result.SortOrder)
}
