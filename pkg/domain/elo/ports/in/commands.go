package elo_in

import (
	"context"

	"github.com/google/uuid"
)

// ApplyRatingsHandler implements match_out.RatingEngine. Kept as its own
// interface so this package's wiring doesn't need to import match_out just
// to satisfy it structurally.
type ApplyRatingsHandler interface {
	ApplyRatings(ctx context.Context, matchID uuid.UUID) error
}
