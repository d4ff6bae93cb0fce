package elo_services

import match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"

// ScoreFeatures mirrors original_source services/score_features.py's
// ScoreFeatures dataclass — the raw counts the MoV weight and the
// analytics close-match detection are derived from.
type ScoreFeatures struct {
	SetsPlayed   int
	GamesT1      int
	GamesT2      int
	GamesMargin  int
	TotalGames   int
	TiebreakSets int
}

func ExtractScoreFeatures(score match_entities.Score) ScoreFeatures {
	var gamesT1, gamesT2, tiebreaks int
	for _, set := range score.Sets {
		gamesT1 += set.T1
		gamesT2 += set.T2
		lo, hi := set.T1, set.T2
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo == 6 && hi == 7 {
			tiebreaks++
		}
	}

	margin := gamesT1 - gamesT2
	if margin < 0 {
		margin = -margin
	}

	return ScoreFeatures{
		SetsPlayed:   len(score.Sets),
		GamesT1:      gamesT1,
		GamesT2:      gamesT2,
		GamesMargin:  margin,
		TotalGames:   gamesT1 + gamesT2,
		TiebreakSets: tiebreaks,
	}
}

// MovWeightFromFeatures is the margin-of-victory weight:
// clamp(0.85, 1.25, 1.0 + 0.06*min(margin,12) - 0.08*(setsPlayed-2)).
func MovWeightFromFeatures(f ScoreFeatures) float64 {
	margin := f.GamesMargin
	if margin > 12 {
		margin = 12
	}
	raw := 1.0 + 0.06*float64(margin) - 0.08*float64(f.SetsPlayed-2)
	return clamp(0.85, 1.25, raw)
}

func clamp(lo, hi, x float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
