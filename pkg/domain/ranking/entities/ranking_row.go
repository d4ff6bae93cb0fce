package ranking_entities

import (
	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// RankingRow is one leaderboard entry: UserLadderState joined with the
// public-profile fields worth displaying.
type RankingRow struct {
	UserID          uuid.UUID             `json:"user_id"`
	Alias           string                `json:"alias"`
	LadderCode      profile_entities.Ladder `json:"ladder_code"`
	CategoryID      uuid.UUID             `json:"category_id"`
	Rating          int                   `json:"rating"`
	VerifiedMatches int                   `json:"verified_matches"`
	IsProvisional   bool                  `json:"is_provisional"`
	Country         string                `json:"country,omitempty"`
	City            string                `json:"city,omitempty"`
	Rank            int                   `json:"rank"`
}
