package match_services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_services "github.com/rivio-api/rivio-api/pkg/domain/match/services"
)

func score(sets ...match_entities.ScoreSet) match_entities.Score {
	return match_entities.Score{Sets: sets}
}

func TestValidateScore_ValidTwoSetMatch(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 6, T2: 3},
		match_entities.ScoreSet{T1: 7, T2: 5},
	))
	assert.NoError(t, err)
}

func TestValidateScore_ValidThreeSetMatch(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 6, T2: 4},
		match_entities.ScoreSet{T1: 4, T2: 6},
		match_entities.ScoreSet{T1: 7, T2: 6},
	))
	assert.NoError(t, err)
}

func TestValidateScore_RejectsSplitTwoSets(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 6, T2: 3},
		match_entities.ScoreSet{T1: 3, T2: 6},
	))
	assert.Error(t, err)
	assert.True(t, common.IsInvalidInputError(err))
}

func TestValidateScore_RejectsThreeSetsWithoutSplit(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 6, T2: 3},
		match_entities.ScoreSet{T1: 6, T2: 4},
		match_entities.ScoreSet{T1: 6, T2: 2},
	))
	assert.Error(t, err)
}

func TestValidateScore_RejectsTiedSet(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 6, T2: 6},
		match_entities.ScoreSet{T1: 6, T2: 3},
	))
	assert.Error(t, err)
}

func TestValidateScore_Rejects6GameSetWithTooFewLoserGames(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 6, T2: 5},
		match_entities.ScoreSet{T1: 6, T2: 3},
	))
	assert.Error(t, err)
}

func TestValidateScore_Rejects7GameSetWithInvalidLoserGames(t *testing.T) {
	err := match_services.ValidateScore(score(
		match_entities.ScoreSet{T1: 7, T2: 4},
		match_entities.ScoreSet{T1: 6, T2: 3},
	))
	assert.Error(t, err)
}

func TestValidateScore_RejectsWrongSetCount(t *testing.T) {
	err := match_services.ValidateScore(score(match_entities.ScoreSet{T1: 6, T2: 3}))
	assert.Error(t, err)
}

func TestScore_DerivedWinner(t *testing.T) {
	s := score(
		match_entities.ScoreSet{T1: 6, T2: 3},
		match_entities.ScoreSet{T1: 4, T2: 6},
		match_entities.ScoreSet{T1: 7, T2: 6},
	)
	assert.Equal(t, 1, s.DerivedWinner())
}
