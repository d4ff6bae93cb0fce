package match_services

import (
	"strconv"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
)

// ValidateScore enforces the bit-exact grammar of : each set
// is a valid padel set, and the sequence of sets is internally coherent
// (no 1-1 split across 2 sets; a 3rd set only to break a 1-1 tie).
func ValidateScore(score match_entities.Score) error {
	numSets := len(score.Sets)
	if numSets != 2 && numSets != 3 {
		return common.NewErrInvalidInput("score must have 2 or 3 sets")
	}

	for i, set := range score.Sets {
		if err := validateSet(set); err != nil {
			return common.NewErrInvalidInput("set " + strconv.Itoa(i+1) + ": " + err.Error())
		}
	}

	winners := make([]int, numSets)
	for i, set := range score.Sets {
		if set.T1 > set.T2 {
			winners[i] = 1
		} else {
			winners[i] = 2
		}
	}

	if numSets == 2 {
		if winners[0] != winners[1] {
			return common.NewErrInvalidInput("2-set match cannot split 1-1")
		}
		return nil
	}

	// numSets == 3: first two sets must be split 1-1.
	if winners[0] == winners[1] {
		return common.NewErrInvalidInput("a 3rd set requires the first two sets to be split 1-1")
	}

	return nil
}

func validateSet(set match_entities.ScoreSet) error {
	if set.T1 < 0 || set.T1 > 7 || set.T2 < 0 || set.T2 > 7 {
		return common.NewErrInvalidInput("games must be between 0 and 7")
	}
	if set.T1 == set.T2 {
		return common.NewErrInvalidInput("a set cannot end in a tie")
	}

	max := set.T1
	min := set.T2
	if set.T2 > max {
		max, min = set.T2, set.T1
	}

	switch max {
	case 6:
		if min > 4 {
			return common.NewErrInvalidInput("a 6-game set requires the loser to have 4 games or fewer")
		}
	case 7:
		if min != 5 && min != 6 {
			return common.NewErrInvalidInput("a 7-game set requires the loser to have 5 or 6 games")
		}
	default:
		return common.NewErrInvalidInput("the winning team must reach 6 or 7 games")
	}

	return nil
}
