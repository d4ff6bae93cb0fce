package ranking_out

import (
	"context"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	ranking_entities "github.com/rivio-api/rivio-api/pkg/domain/ranking/entities"
)

// RankingScope narrows a leaderboard query.
type RankingScope struct {
	LadderCode profile_entities.Ladder
	CategoryID uuid.UUID
	Country    string
	City       string
}

// RankingReader is a dedicated read-only port rather than an instantiation
// of a generic query-service compiler — see DESIGN.md for why.
type RankingReader interface {
	// ListRanking returns UserLadderState rows joined to UserProfile WHERE
	// is_public, ordered by rating DESC, verified_matches DESC, LIMIT 200.
	ListRanking(ctx context.Context, scope RankingScope) ([]*ranking_entities.RankingRow, error)
}
