package history_usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	history_entities "github.com/rivio-api/rivio-api/pkg/domain/history/entities"
	history_in "github.com/rivio-api/rivio-api/pkg/domain/history/ports/in"
	history_usecases "github.com/rivio-api/rivio-api/pkg/domain/history/usecases"
)

func TestMatchDetail_NotFoundWhenNotParticipant(t *testing.T) {
	viewer := uuid.New()
	matchID := uuid.New()

	matches := new(mockMatchHistoryReader)
	matches.On("GetForUser", mock.Anything, viewer, matchID).Return(nil, nil)

	u := history_usecases.NewMatchDetailUseCase(matches)
	_, err := u.Handle(context.Background(), history_in.MatchDetailQuery{Viewer: viewer, MatchID: matchID})

	assert.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))
}

func TestMatchDetail_ReturnsParticipantsAndScore(t *testing.T) {
	viewer := uuid.New()
	raw := sampleRawRow(viewer, viewer)

	matches := new(mockMatchHistoryReader)
	matches.On("GetForUser", mock.Anything, viewer, raw.Match.ID).Return(raw, nil)

	u := history_usecases.NewMatchDetailUseCase(matches)
	detail, err := u.Handle(context.Background(), history_in.MatchDetailQuery{Viewer: viewer, MatchID: raw.Match.ID})

	assert.NoError(t, err)
	assert.Len(t, detail.Participants, 4)
	assert.NotNil(t, detail.Score)

	found := false
	for _, p := range detail.Participants {
		if p.Alias == history_entities.MaskedAlias {
			found = true
		}
	}
	assert.True(t, found, "non-public participant alias should be masked even to a fellow participant")
}
