package match_usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_in "github.com/rivio-api/rivio-api/pkg/domain/match/ports/in"
	match_usecases "github.com/rivio-api/rivio-api/pkg/domain/match/usecases"
)

type confirmMatchFixture struct {
	matches       *mockMatchWriter
	matchReader   *mockMatchReader
	participants  *mockParticipantReader
	scores        *mockScoreWriter
	scoreReader   *mockScoreReader
	confirmations *mockConfirmationWriter
	confirmReader *mockConfirmationReader
	ratings       *mockRatingEngine
	analytics     *mockAnalyticsProjector
	audit         *mockAuditRecorder
	uc            *match_usecases.ConfirmMatchUseCase
}

func newConfirmMatchFixture() *confirmMatchFixture {
	f := &confirmMatchFixture{
		matches:       new(mockMatchWriter),
		matchReader:   new(mockMatchReader),
		participants:  new(mockParticipantReader),
		scores:        new(mockScoreWriter),
		scoreReader:   new(mockScoreReader),
		confirmations: new(mockConfirmationWriter),
		confirmReader: new(mockConfirmationReader),
		ratings:       new(mockRatingEngine),
		analytics:     new(mockAnalyticsProjector),
		audit:         new(mockAuditRecorder),
	}
	f.audit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.uc = match_usecases.NewConfirmMatchUseCase(&mockTransactor{}, f.matches, f.matchReader, f.participants, f.scores, f.scoreReader, f.confirmations, f.confirmReader, f.ratings, f.analytics, f.audit, 2)
	return f
}

func fourParticipants(matchID uuid.UUID, userIDs [4]uuid.UUID) []*match_entities.MatchParticipant {
	return []*match_entities.MatchParticipant{
		{MatchID: matchID, UserID: userIDs[0], TeamNo: match_entities.Team1},
		{MatchID: matchID, UserID: userIDs[1], TeamNo: match_entities.Team1},
		{MatchID: matchID, UserID: userIDs[2], TeamNo: match_entities.Team2},
		{MatchID: matchID, UserID: userIDs[3], TeamNo: match_entities.Team2},
	}
}

func TestConfirmMatch_RejectsNonParticipant(t *testing.T) {
	f := newConfirmMatchFixture()
	matchID := uuid.New()
	userIDs := [4]uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	match := &match_entities.Match{ID: matchID, Status: match_entities.MatchStatusPendingConfirm, ConfirmationDeadline: time.Now().Add(time.Hour)}

	f.matchReader.On("FindByIDForUpdate", mock.Anything, matchID).Return(match, nil)
	f.participants.On("ListByMatch", mock.Anything, matchID).Return(fourParticipants(matchID, userIDs), nil)

	_, err := f.uc.Handle(context.Background(), match_in.ConfirmMatchCommand{MatchID: matchID, Actor: uuid.New()})

	assert.Error(t, err)
	assert.True(t, common.IsForbiddenError(err))
}

func TestConfirmMatch_ExpiresPastDeadline(t *testing.T) {
	f := newConfirmMatchFixture()
	matchID := uuid.New()
	userIDs := [4]uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	match := &match_entities.Match{ID: matchID, Status: match_entities.MatchStatusPendingConfirm, ConfirmationDeadline: time.Now().Add(-time.Hour)}

	f.matchReader.On("FindByIDForUpdate", mock.Anything, matchID).Return(match, nil)
	f.participants.On("ListByMatch", mock.Anything, matchID).Return(fourParticipants(matchID, userIDs), nil)
	f.matches.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Handle(context.Background(), match_in.ConfirmMatchCommand{MatchID: matchID, Actor: userIDs[0]})

	assert.Error(t, err)
	assert.True(t, common.IsBadRequestError(err))
	assert.Equal(t, match_entities.MatchStatusExpired, match.Status)
}

func TestConfirmMatch_PlainConfirmRatifiesOnSecondTeam(t *testing.T) {
	f := newConfirmMatchFixture()
	matchID := uuid.New()
	userIDs := [4]uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	match := &match_entities.Match{ID: matchID, Status: match_entities.MatchStatusPendingConfirm, ConfirmationDeadline: time.Now().Add(time.Hour)}

	f.matchReader.On("FindByIDForUpdate", mock.Anything, matchID).Return(match, nil)
	f.participants.On("ListByMatch", mock.Anything, matchID).Return(fourParticipants(matchID, userIDs), nil)
	f.scoreReader.On("FindByMatch", mock.Anything, matchID).Return(&match_entities.MatchScore{MatchID: matchID, ScoreJSON: []byte(`{"sets":[{"t1":6,"t2":3},{"t1":6,"t2":4}]}`)}, nil)
	f.confirmations.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.confirmReader.On("ListByMatch", mock.Anything, matchID).Return([]*match_entities.MatchConfirmation{
		{MatchID: matchID, UserID: userIDs[0], Status: match_entities.ConfirmationConfirmed},
		{MatchID: matchID, UserID: userIDs[2], Status: match_entities.ConfirmationConfirmed},
	}, nil)
	f.matches.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.ratings.On("ApplyRatings", mock.Anything, matchID).Return(nil)
	f.analytics.On("ProjectMatch", mock.Anything, matchID).Return(nil)

	result, err := f.uc.Handle(context.Background(), match_in.ConfirmMatchCommand{MatchID: matchID, Actor: userIDs[2]})

	assert.NoError(t, err)
	assert.Equal(t, match_entities.MatchStatusVerified, result.Status)
	f.ratings.AssertCalled(t, "ApplyRatings", mock.Anything, matchID)
	f.analytics.AssertCalled(t, "ProjectMatch", mock.Anything, matchID)
}

func TestConfirmMatch_ProposalLimitReached(t *testing.T) {
	f := newConfirmMatchFixture()
	matchID := uuid.New()
	userIDs := [4]uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	match := &match_entities.Match{
		ID: matchID, Status: match_entities.MatchStatusPendingConfirm,
		ConfirmationDeadline: time.Now().Add(time.Hour), ProposalCount: 2,
	}

	f.matchReader.On("FindByIDForUpdate", mock.Anything, matchID).Return(match, nil)
	f.participants.On("ListByMatch", mock.Anything, matchID).Return(fourParticipants(matchID, userIDs), nil)
	f.scoreReader.On("FindByMatch", mock.Anything, matchID).Return(&match_entities.MatchScore{MatchID: matchID, ScoreJSON: []byte(`{"sets":[{"t1":6,"t2":3},{"t1":6,"t2":4}]}`)}, nil)

	_, err := f.uc.Handle(context.Background(), match_in.ConfirmMatchCommand{
		MatchID: matchID, Actor: userIDs[0], HasScore: true,
		ScoreSets: []match_entities.ScoreSet{{T1: 7, T2: 5}, {T1: 6, T2: 2}},
	})

	assert.Error(t, err)
	assert.True(t, common.IsBadRequestError(err))
}
