package ranking_usecases

import (
	"context"
	"strings"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	ranking_entities "github.com/rivio-api/rivio-api/pkg/domain/ranking/entities"
	ranking_in "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/in"
	ranking_out "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/out"
)

// GetRankingUseCase implements ranking_in.GetRankingQueryHandler. It is a thin pass-through over RankingReader: ordering, the LIMIT
// 200 cap, and the is_public join all live in the reader's query, since
// this is a read-only projection with no write-side invariants to enforce.
type GetRankingUseCase struct {
	Rankings ranking_out.RankingReader
}

func NewGetRankingUseCase(rankings ranking_out.RankingReader) *GetRankingUseCase {
	return &GetRankingUseCase{Rankings: rankings}
}

func (u *GetRankingUseCase) Handle(ctx context.Context, query ranking_in.GetRankingQuery) ([]*ranking_entities.RankingRow, error) {
	if query.City != "" && query.Country == "" {
		return nil, common.NewErrInvalidInput("city requires country")
	}

	rows, err := u.Rankings.ListRanking(ctx, ranking_out.RankingScope{
		LadderCode: query.LadderCode,
		CategoryID: query.CategoryID,
		Country:    strings.TrimSpace(query.Country),
		City:       strings.TrimSpace(query.City),
	})
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		row.Rank = i + 1
	}
	return rows, nil
}
