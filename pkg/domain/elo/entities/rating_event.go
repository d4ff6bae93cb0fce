package elo_entities

import (
	"time"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// RatingEvent is the per-(match,user) immutable audit record. Zero-sum invariant per team is enforced by the caller: team1's
// delta = -team2's delta before any per-user provisional clamp is applied.
type RatingEvent struct {
	ID         uuid.UUID             `json:"id" db:"id"`
	MatchID    uuid.UUID             `json:"match_id" db:"match_id"`
	UserID     uuid.UUID             `json:"user_id" db:"user_id"`
	LadderCode profile_entities.Ladder `json:"ladder_code" db:"ladder_code"`
	OldRating  int                   `json:"old_rating" db:"old_rating"`
	NewRating  int                   `json:"new_rating" db:"new_rating"`
	Delta      int                   `json:"delta" db:"delta"`
	KFactor    int                   `json:"k_factor" db:"k_factor"`
	Weight     float64               `json:"weight" db:"weight"`
	CreatedAt  time.Time             `json:"created_at" db:"created_at"`
}

func NewRatingEvent(matchID, userID uuid.UUID, ladder profile_entities.Ladder, oldRating, newRating, delta, kFactor int, weight float64) *RatingEvent {
	return &RatingEvent{
		ID:         uuid.New(),
		MatchID:    matchID,
		UserID:     userID,
		LadderCode: ladder,
		OldRating:  oldRating,
		NewRating:  newRating,
		Delta:      delta,
		KFactor:    kFactor,
		Weight:     weight,
		CreatedAt:  time.Now().UTC(),
	}
}
