package analytics_out

import (
	"context"
	"time"

	"github.com/google/uuid"

	analytics_entities "github.com/rivio-api/rivio-api/pkg/domain/analytics/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// ParticipantResult is one player's role/outcome in a verified match
// (original_source _ParticipantResult).
type ParticipantResult struct {
	UserID uuid.UUID
	TeamNo int
	IsWin  bool
}

// VerifiedMatchContext is everything the projector needs about a single
// verified match, loaded once per ProjectMatch/rebuild iteration
// (original_source _load_verified_match_context).
type VerifiedMatchContext struct {
	MatchID      uuid.UUID
	LadderCode   profile_entities.Ladder
	PlayedAt     time.Time
	IsCloseMatch bool
	Participants []ParticipantResult
}

// RatingMeta is a participant's before/after/delta for the match, sourced
// from rating_events with a ladder-state fallback for unrated participants
// (original_source _RatingMeta / _load_rating_map).
type RatingMeta struct {
	OldRating *int
	NewRating *int
	Delta     *int
}

// MatchContextReader loads the verified-match facts the projector needs,
// kept in the analytics package's own out-port (rather than importing
// match_out directly) per this codebase's cross-domain decoupling pattern.
type MatchContextReader interface {
	LoadVerifiedMatch(ctx context.Context, matchID uuid.UUID) (*VerifiedMatchContext, error)
	LoadRatingMap(ctx context.Context, matchID uuid.UUID, ladder profile_entities.Ladder, participantIDs []uuid.UUID) (map[uuid.UUID]RatingMeta, error)
	// ListVerifiedMatchesForRebuild streams every verified match in
	// played_at order for a full analytics rebuild.
	ListVerifiedMatchesForRebuild(ctx context.Context) ([]*VerifiedMatchContext, error)
}

type UserAnalyticsStateWriter interface {
	EnsureExists(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) error
	// LockForUpdate row-locks the state so its counters can be read, bumped,
	// and written back inside the caller's transaction.
	LockForUpdate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*analytics_entities.UserAnalyticsState, error)
	Update(ctx context.Context, state *analytics_entities.UserAnalyticsState) error
	DeleteAll(ctx context.Context) error
}

type UserAnalyticsStateReader interface {
	FindByUserAndLadder(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*analytics_entities.UserAnalyticsState, error)
}

type UserAnalyticsMatchAppliedWriter interface {
	// TryInsert returns inserted=false without error when the (user,match)
	// row already exists — the idempotency gate requires for
	// the inline ProjectMatch path (not for rebuild, which wipes first).
	TryInsert(ctx context.Context, row *analytics_entities.UserAnalyticsMatchApplied, enforceIdempotency bool) (inserted bool, err error)
	UpdateRollingSnapshot(ctx context.Context, userID, matchID uuid.UUID, rolling10, rolling20, rolling50 float64, streakType analytics_entities.StreakType, streakLen int) error
	DeleteAll(ctx context.Context) error
	// CountRecentWindows backs the 7/30/90-day activity counters.
	CountRecentWindows(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, playedAt time.Time) (c7, c30, c90 int, err error)
}

type UserAnalyticsPartnerStatsWriter interface {
	Upsert(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, partnerUserID uuid.UUID, isWin bool, playedAt time.Time) error
	DeleteAll(ctx context.Context) error
}

type UserAnalyticsRivalStatsWriter interface {
	Upsert(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, rivalUserID uuid.UUID, isWin bool, playedAt time.Time) error
	DeleteAll(ctx context.Context) error
}

// CurrentRatingReader falls back to the live ladder-state rating when a
// rating_events row isn't present for a participant (e.g. backfilled data).
type CurrentRatingReader interface {
	CurrentRating(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*int, error)
}
