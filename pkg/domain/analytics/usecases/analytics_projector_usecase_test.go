package analytics_usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	analytics_entities "github.com/rivio-api/rivio-api/pkg/domain/analytics/entities"
	analytics_out "github.com/rivio-api/rivio-api/pkg/domain/analytics/ports/out"
	analytics_usecases "github.com/rivio-api/rivio-api/pkg/domain/analytics/usecases"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

func intPtr(v int) *int { return &v }

func TestProjectMatch_UpdatesCountersForEachParticipant(t *testing.T) {
	matchID := uuid.New()
	ladder := profile_entities.LadderHM
	playedAt := time.Now().UTC()

	a1, a2, b1, b2 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	matchCtx := &analytics_out.VerifiedMatchContext{
		MatchID:      matchID,
		LadderCode:   ladder,
		PlayedAt:     playedAt,
		IsCloseMatch: false,
		Participants: []analytics_out.ParticipantResult{
			{UserID: a1, TeamNo: 1, IsWin: true},
			{UserID: a2, TeamNo: 1, IsWin: true},
			{UserID: b1, TeamNo: 2, IsWin: false},
			{UserID: b2, TeamNo: 2, IsWin: false},
		},
	}

	ratings := map[uuid.UUID]analytics_out.RatingMeta{
		a1: {OldRating: intPtr(1000), NewRating: intPtr(1012), Delta: intPtr(12)},
		a2: {OldRating: intPtr(1000), NewRating: intPtr(1012), Delta: intPtr(12)},
		b1: {OldRating: intPtr(1000), NewRating: intPtr(988), Delta: intPtr(-12)},
		b2: {OldRating: intPtr(1000), NewRating: intPtr(988), Delta: intPtr(-12)},
	}

	contexts := new(mockMatchContextReader)
	contexts.On("LoadVerifiedMatch", mock.Anything, matchID).Return(matchCtx, nil)
	contexts.On("LoadRatingMap", mock.Anything, matchID, ladder, mock.Anything).Return(ratings, nil)

	states := new(mockStateWriter)
	states.On("EnsureExists", mock.Anything, mock.Anything, ladder).Return(nil)
	states.On("LockForUpdate", mock.Anything, mock.Anything, ladder).Return(
		analytics_entities.NewUserAnalyticsState(uuid.Nil, ladder), nil)
	states.On("Update", mock.Anything, mock.Anything).Return(nil)

	matchApplied := new(mockMatchAppliedWriter)
	matchApplied.On("TryInsert", mock.Anything, mock.Anything, true).Return(true, nil)
	matchApplied.On("UpdateRollingSnapshot", mock.Anything, mock.Anything, matchID, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	matchApplied.On("CountRecentWindows", mock.Anything, mock.Anything, ladder, playedAt).Return(1, 1, 1, nil)

	partnerStats := new(mockPartnerStatsWriter)
	partnerStats.On("Upsert", mock.Anything, mock.Anything, ladder, mock.Anything, mock.Anything, playedAt).Return(nil)

	rivalStats := new(mockRivalStatsWriter)
	rivalStats.On("Upsert", mock.Anything, mock.Anything, ladder, mock.Anything, mock.Anything, playedAt).Return(nil)

	currentRatings := new(mockCurrentRatingReader)

	u := &analytics_usecases.AnalyticsProjectorUseCase{
		MatchContexts:  contexts,
		States:         states,
		MatchApplied:   matchApplied,
		PartnerStats:   partnerStats,
		RivalStats:     rivalStats,
		CurrentRatings: currentRatings,
	}

	err := u.ProjectMatch(context.Background(), matchID)
	assert.NoError(t, err)

	// 4 participants: each gets one LockForUpdate/Update and one partner
	// Upsert (their one teammate) and two rival Upserts (the two opponents).
	states.AssertNumberOfCalls(t, "LockForUpdate", 4)
	states.AssertNumberOfCalls(t, "Update", 4)
	partnerStats.AssertNumberOfCalls(t, "Upsert", 4)
	rivalStats.AssertNumberOfCalls(t, "Upsert", 8)
	currentRatings.AssertNotCalled(t, "CurrentRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectMatch_SkipsWhenNotVerified(t *testing.T) {
	matchID := uuid.New()
	contexts := new(mockMatchContextReader)
	contexts.On("LoadVerifiedMatch", mock.Anything, matchID).Return(nil, nil)

	u := &analytics_usecases.AnalyticsProjectorUseCase{MatchContexts: contexts}
	err := u.ProjectMatch(context.Background(), matchID)

	assert.NoError(t, err)
	contexts.AssertExpectations(t)
}

func TestProjectMatch_SkipsStateUpdateWhenAlreadyApplied(t *testing.T) {
	matchID := uuid.New()
	ladder := profile_entities.LadderHM
	playedAt := time.Now().UTC()
	a1 := uuid.New()

	matchCtx := &analytics_out.VerifiedMatchContext{
		MatchID:    matchID,
		LadderCode: ladder,
		PlayedAt:   playedAt,
		Participants: []analytics_out.ParticipantResult{
			{UserID: a1, TeamNo: 1, IsWin: true},
		},
	}

	contexts := new(mockMatchContextReader)
	contexts.On("LoadVerifiedMatch", mock.Anything, matchID).Return(matchCtx, nil)
	contexts.On("LoadRatingMap", mock.Anything, matchID, ladder, mock.Anything).Return(map[uuid.UUID]analytics_out.RatingMeta{}, nil)

	matchApplied := new(mockMatchAppliedWriter)
	matchApplied.On("TryInsert", mock.Anything, mock.Anything, true).Return(false, nil)

	states := new(mockStateWriter)

	u := &analytics_usecases.AnalyticsProjectorUseCase{
		MatchContexts: contexts,
		MatchApplied:  matchApplied,
		States:        states,
	}

	err := u.ProjectMatch(context.Background(), matchID)
	assert.NoError(t, err)
	states.AssertNotCalled(t, "LockForUpdate", mock.Anything, mock.Anything, mock.Anything)
}
