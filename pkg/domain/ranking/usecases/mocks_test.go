package ranking_usecases_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	ranking_entities "github.com/rivio-api/rivio-api/pkg/domain/ranking/entities"
	ranking_out "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/out"
)

type mockRankingReader struct{ mock.Mock }

func (m *mockRankingReader) ListRanking(ctx context.Context, scope ranking_out.RankingScope) ([]*ranking_entities.RankingRow, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ranking_entities.RankingRow), args.Error(1)
}
