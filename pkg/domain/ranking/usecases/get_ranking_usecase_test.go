package ranking_usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	ranking_entities "github.com/rivio-api/rivio-api/pkg/domain/ranking/entities"
	ranking_in "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/in"
	ranking_out "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/out"
	ranking_usecases "github.com/rivio-api/rivio-api/pkg/domain/ranking/usecases"
)

func TestGetRanking_RejectsCityWithoutCountry(t *testing.T) {
	reader := new(mockRankingReader)
	u := ranking_usecases.NewGetRankingUseCase(reader)

	_, err := u.Handle(context.Background(), ranking_in.GetRankingQuery{
		LadderCode: profile_entities.LadderHM,
		CategoryID: uuid.New(),
		City:       "Neiva",
	})

	assert.Error(t, err)
	assert.True(t, common.IsInvalidInputError(err))
	reader.AssertNotCalled(t, "ListRanking", mock.Anything, mock.Anything)
}

func TestGetRanking_AssignsRankOrderFromReaderOutput(t *testing.T) {
	categoryID := uuid.New()
	rows := []*ranking_entities.RankingRow{
		{UserID: uuid.New(), Rating: 1200},
		{UserID: uuid.New(), Rating: 1100},
		{UserID: uuid.New(), Rating: 1000},
	}

	reader := new(mockRankingReader)
	reader.On("ListRanking", mock.Anything, ranking_out.RankingScope{
		LadderCode: profile_entities.LadderHM,
		CategoryID: categoryID,
		Country:    "CO",
		City:       "Neiva",
	}).Return(rows, nil)

	u := ranking_usecases.NewGetRankingUseCase(reader)
	result, err := u.Handle(context.Background(), ranking_in.GetRankingQuery{
		LadderCode: profile_entities.LadderHM,
		CategoryID: categoryID,
		Country:    "CO",
		City:       "Neiva",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result[0].Rank)
	assert.Equal(t, 2, result[1].Rank)
	assert.Equal(t, 3, result[2].Rank)
}
