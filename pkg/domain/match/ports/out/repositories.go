package match_out

import (
	"context"
	"time"

	"github.com/google/uuid"

	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
)

type MatchWriter interface {
	Create(ctx context.Context, match *match_entities.Match, participants []*match_entities.MatchParticipant, score *match_entities.MatchScore, confirmations []*match_entities.MatchConfirmation) error
	Update(ctx context.Context, match *match_entities.Match) error
}

type MatchReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*match_entities.Match, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*match_entities.Match, error)
	// CountOpenByCreator counts pending_confirm matches created by userID
	//.
	CountOpenByCreator(ctx context.Context, userID uuid.UUID) (int, error)
	// CountBlockingByCreatorSince counts the creator's matches since `since`
	// that are expired, or pending_confirm past their deadline.
	CountBlockingByCreatorSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

type MatchParticipantReader interface {
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchParticipant, error)
}

type MatchScoreWriter interface {
	Replace(ctx context.Context, score *match_entities.MatchScore) error
}

type MatchScoreReader interface {
	FindByMatch(ctx context.Context, matchID uuid.UUID) (*match_entities.MatchScore, error)
}

type MatchConfirmationWriter interface {
	Upsert(ctx context.Context, confirmation *match_entities.MatchConfirmation) error
	// ResetAllToPending clears every participant's confirmation for a new
	// proposal round.
	ResetAllToPending(ctx context.Context, matchID uuid.UUID) error
}

type MatchConfirmationReader interface {
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchConfirmation, error)
}

type MatchDisputeWriter interface {
	Create(ctx context.Context, dispute *match_entities.MatchDispute) error
}

// ClubReader backs rule 5 ("if club_id given, club exists and
// is active"). Clubs are out of the core's scope otherwise.
type ClubReader interface {
	IsActiveClub(ctx context.Context, clubID uuid.UUID) (bool, error)
}
