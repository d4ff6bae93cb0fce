package analytics_in

import (
	"context"

	"github.com/google/uuid"
)

// ProjectMatchHandler implements match_out.AnalyticsProjector. Kept as its
// own interface so this package's wiring doesn't need to import match_out
// to satisfy it structurally (mirrors elo_in.ApplyRatingsHandler).
type ProjectMatchHandler interface {
	ProjectMatch(ctx context.Context, matchID uuid.UUID) error
}

// RebuildAnalyticsHandler recomputes every analytics table from the
// verified-match log, for ops recovery or a historical backfill.
type RebuildAnalyticsHandler interface {
	Rebuild(ctx context.Context) error
}
