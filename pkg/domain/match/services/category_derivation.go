package match_services

import (
	"sort"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// DeriveLadder implements rule 4: gender mix maps exactly to
// a ladder. Returns ok=false for any other mix.
func DeriveLadder(genders [4]profile_entities.Gender) (profile_entities.Ladder, bool) {
	men, women := 0, 0
	for _, g := range genders {
		switch g {
		case profile_entities.GenderMale:
			men++
		case profile_entities.GenderFemale:
			women++
		default:
			return "", false
		}
	}
	switch {
	case men == 4:
		return profile_entities.LadderHM, true
	case women == 4:
		return profile_entities.LadderWM, true
	case men == 2 && women == 2:
		return profile_entities.LadderMX, true
	default:
		return "", false
	}
}

// DeriveCategory picks the category labeling a match:
// target = ceil(median) of the 4 participants' sort_orders on the derived
// ladder; pick the ladder category whose sort_order minimizes |sort-target|,
// ties broken toward the smaller sort_order. This is a labeling convenience
// and never feeds the Elo engine.
func DeriveCategory(participantSortOrders [4]int, ladderCategories []*profile_entities.Category) *profile_entities.Category {
	if len(ladderCategories) == 0 {
		return nil
	}

	sorted := append([]int(nil), participantSortOrders[:]...)
	sort.Ints(sorted)
	// ceil(median) of 4 values: average of the two middle values, rounded up.
	target := ceilDiv(sorted[1]+sorted[2], 2)

	best := ladderCategories[0]
	bestDiff := absInt(best.SortOrder - target)
	for _, c := range ladderCategories[1:] {
		diff := absInt(c.SortOrder - target)
		if diff < bestDiff || (diff == bestDiff && c.SortOrder < best.SortOrder) {
			best = c
			bestDiff = diff
		}
	}
	return best
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	if (a % b) == 0 {
		return a / b
	}
	return a/b + 1
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
