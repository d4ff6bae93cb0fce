package history_out

import (
	"context"

	"github.com/google/uuid"

	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// RawParticipant is a joined match_participants+match_confirmations+
// user_profiles row, before any viewer-dependent masking is applied.
type RawParticipant struct {
	UserID             uuid.UUID
	Alias              string
	IsPublic           bool
	Gender             profile_entities.Gender
	TeamNo             match_entities.TeamNo
	ConfirmationStatus match_entities.ConfirmationStatus
}

// RawMatchRow is a single match plus its four raw participants, active
// score, and creator alias — everything timeline()/detail() need before
// viewer-dependent transformation.
type RawMatchRow struct {
	Match           *match_entities.Match
	Participants    []RawParticipant
	Score           *match_entities.Score
	CreatedByAlias  string
}

// MatchHistoryReader backs both timeline() and detail(). Kept as history's
// own out-port (rather than importing match_out/profile_out) per this
// codebase's cross-domain decoupling pattern.
type MatchHistoryReader interface {
	// ListForUser returns every match the given user participated in,
	// newest played_at first, already filtered to the requested lifecycle
	// scope.
	ListForUser(ctx context.Context, userID uuid.UUID, scope string) ([]*RawMatchRow, error)
	// GetForUser loads a single match a given user participated in, or nil
	// if that user wasn't a participant.
	GetForUser(ctx context.Context, userID uuid.UUID, matchID uuid.UUID) (*RawMatchRow, error)
}

// ProfileVisibilityReader answers the one profile fact timeline() needs
// about the target user that isn't already on a RawMatchRow: whether
// target_user's profile is public, gating a non-self viewer's access to
// their verified-only timeline.
type ProfileVisibilityReader interface {
	IsPublic(ctx context.Context, userID uuid.UUID) (bool, error)
}
