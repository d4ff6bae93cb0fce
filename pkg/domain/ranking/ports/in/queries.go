package ranking_in

import (
	"context"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	ranking_entities "github.com/rivio-api/rivio-api/pkg/domain/ranking/entities"
)

// GetRankingQuery is the parsed `GET /rankings/{ladder}/{category_id}`
// request.
type GetRankingQuery struct {
	LadderCode profile_entities.Ladder
	CategoryID uuid.UUID
	Country    string
	City       string
}

type GetRankingQueryHandler interface {
	Handle(ctx context.Context, query GetRankingQuery) ([]*ranking_entities.RankingRow, error)
}
