package analytics_services

import analytics_entities "github.com/rivio-api/rivio-api/pkg/domain/analytics/entities"

// RivalBucketDelta is the rating gap (in either direction) past which an
// opponent is classed stronger/weaker rather than similar.
const RivalBucketDelta = 75

// QualityBucketFor classifies opponent strength relative to the
// participant's own pre-match rating. Either rating being unknown (new
// player, missing rating event) defaults to "similar".
func QualityBucketFor(selfOldRating, opponentAvgRating *int) analytics_entities.QualityBucket {
	if selfOldRating == nil || opponentAvgRating == nil {
		return analytics_entities.QualitySimilar
	}
	diff := *opponentAvgRating - *selfOldRating
	switch {
	case diff >= RivalBucketDelta:
		return analytics_entities.QualityStronger
	case diff <= -RivalBucketDelta:
		return analytics_entities.QualityWeaker
	default:
		return analytics_entities.QualitySimilar
	}
}

// AverageRating rounds the mean of a set of known ratings; returns nil for
// an empty input (original_source's opp_avg computation).
func AverageRating(ratings []int) *int {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := int(roundHalfAwayFromZero(float64(sum) / float64(len(ratings))))
	return &avg
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return -float64(int64(-x + 0.5))
}
