package elo_usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	elo_usecases "github.com/rivio-api/rivio-api/pkg/domain/elo/usecases"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

func verifiedLadderState(userID uuid.UUID, rating, verifiedMatches int) *profile_entities.UserLadderState {
	return &profile_entities.UserLadderState{
		UserID:          userID,
		LadderCode:      profile_entities.LadderHM,
		Rating:          rating,
		VerifiedMatches: verifiedMatches,
		IsProvisional:   verifiedMatches < 5,
		TrustScore:      100,
		UpdatedAt:       time.Now().UTC(),
	}
}

func scoreJSON(t *testing.T, score match_entities.Score) []byte {
	raw, err := score.MarshalToJSON()
	assert.NoError(t, err)
	return raw
}

func TestApplyRatings_NoOpWhenAlreadyProcessed(t *testing.T) {
	matchID := uuid.New()
	now := time.Now().UTC()
	match := &match_entities.Match{ID: matchID, LadderCode: profile_entities.LadderHM, RankProcessedAt: &now}

	matches := new(mockMatchReader)
	matches.On("FindByID", mock.Anything, matchID).Return(match, nil)

	u := &elo_usecases.ApplyRatingsUseCase{Matches: matches}
	err := u.ApplyRatings(context.Background(), matchID)

	assert.NoError(t, err)
	matches.AssertExpectations(t)
}

func TestApplyRatings_AppliesZeroSumDeltaAndMarksProcessed(t *testing.T) {
	matchID := uuid.New()
	ladder := profile_entities.LadderHM
	match := &match_entities.Match{ID: matchID, LadderCode: ladder}

	a1, a2, b1, b2 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	participants := []*match_entities.MatchParticipant{
		{MatchID: matchID, UserID: a1, TeamNo: match_entities.Team1},
		{MatchID: matchID, UserID: a2, TeamNo: match_entities.Team1},
		{MatchID: matchID, UserID: b1, TeamNo: match_entities.Team2},
		{MatchID: matchID, UserID: b2, TeamNo: match_entities.Team2},
	}

	score := match_entities.Score{Sets: []match_entities.ScoreSet{{T1: 6, T2: 3}, {T1: 6, T2: 4}}}
	matchScore := &match_entities.MatchScore{MatchID: matchID, ScoreJSON: scoreJSON(t, score), WinnerTeamNo: match_entities.Team1}

	stateA1 := verifiedLadderState(a1, 1000, 10)
	stateA2 := verifiedLadderState(a2, 1000, 10)
	stateB1 := verifiedLadderState(b1, 1000, 10)
	stateB2 := verifiedLadderState(b2, 1000, 10)

	matches := new(mockMatchReader)
	matches.On("FindByID", mock.Anything, matchID).Return(match, nil)

	matchWriter := new(mockMatchWriter)
	matchWriter.On("Update", mock.Anything, mock.Anything).Return(nil)

	partReader := new(mockParticipantReader)
	partReader.On("ListByMatch", mock.Anything, matchID).Return(participants, nil)

	scoreReader := new(mockScoreReader)
	scoreReader.On("FindByMatch", mock.Anything, matchID).Return(matchScore, nil)

	ladderReader := new(mockLadderStateReader)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, a1, ladder).Return(stateA1, nil)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, a2, ladder).Return(stateA2, nil)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, b1, ladder).Return(stateB1, nil)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, b2, ladder).Return(stateB2, nil)

	ladderWriter := new(mockLadderStateWriter)
	ladderWriter.On("Update", mock.Anything, mock.Anything).Return(nil)

	ratingEvents := new(mockRatingEventWriter)
	ratingEvents.On("Create", mock.Anything, mock.Anything).Return(nil)

	u := &elo_usecases.ApplyRatingsUseCase{
		Matches:        matches,
		MatchWriter:    matchWriter,
		Participants:   partReader,
		Scores:         scoreReader,
		LadderStates:   ladderReader,
		LadderStateW:   ladderWriter,
		RatingEvents:   ratingEvents,
		ProvisionalMax: 5,
		ProvisionalCap: 80,
	}

	err := u.ApplyRatings(context.Background(), matchID)
	assert.NoError(t, err)

	assert.True(t, match.IsRankProcessed())
	// Team1 won; team ratings equal, so expected score is 0.5 for each side
	// and the delta must be zero-sum across the two teams.
	assert.Equal(t, stateA1.Rating-1000, stateA2.Rating-1000)
	assert.Equal(t, -(stateA1.Rating - 1000), stateB1.Rating-1000)
	assert.Greater(t, stateA1.Rating, 1000)
	assert.Less(t, stateB1.Rating, 1000)

	matches.AssertExpectations(t)
	matchWriter.AssertExpectations(t)
	ladderWriter.AssertExpectations(t)
	ratingEvents.AssertExpectations(t)
}

func TestApplyRatings_ClampsProvisionalDelta(t *testing.T) {
	matchID := uuid.New()
	ladder := profile_entities.LadderHM
	match := &match_entities.Match{ID: matchID, LadderCode: ladder}

	a1, a2, b1, b2 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	participants := []*match_entities.MatchParticipant{
		{MatchID: matchID, UserID: a1, TeamNo: match_entities.Team1},
		{MatchID: matchID, UserID: a2, TeamNo: match_entities.Team1},
		{MatchID: matchID, UserID: b1, TeamNo: match_entities.Team2},
		{MatchID: matchID, UserID: b2, TeamNo: match_entities.Team2},
	}

	// Large rating gap plus a max-margin blowout pushes the raw delta past
	// any reasonable provisional cap.
	score := match_entities.Score{Sets: []match_entities.ScoreSet{{T1: 6, T2: 0}, {T1: 6, T2: 0}}}
	matchScore := &match_entities.MatchScore{MatchID: matchID, ScoreJSON: scoreJSON(t, score), WinnerTeamNo: match_entities.Team1}

	stateA1 := verifiedLadderState(a1, 600, 0)
	stateA2 := verifiedLadderState(a2, 600, 0)
	stateB1 := verifiedLadderState(b1, 1400, 0)
	stateB2 := verifiedLadderState(b2, 1400, 0)

	matches := new(mockMatchReader)
	matches.On("FindByID", mock.Anything, matchID).Return(match, nil)

	matchWriter := new(mockMatchWriter)
	matchWriter.On("Update", mock.Anything, mock.Anything).Return(nil)

	partReader := new(mockParticipantReader)
	partReader.On("ListByMatch", mock.Anything, matchID).Return(participants, nil)

	scoreReader := new(mockScoreReader)
	scoreReader.On("FindByMatch", mock.Anything, matchID).Return(matchScore, nil)

	ladderReader := new(mockLadderStateReader)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, a1, ladder).Return(stateA1, nil)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, a2, ladder).Return(stateA2, nil)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, b1, ladder).Return(stateB1, nil)
	ladderReader.On("FindByUserAndLadderForUpdate", mock.Anything, b2, ladder).Return(stateB2, nil)

	ladderWriter := new(mockLadderStateWriter)
	ladderWriter.On("Update", mock.Anything, mock.Anything).Return(nil)

	ratingEvents := new(mockRatingEventWriter)
	ratingEvents.On("Create", mock.Anything, mock.Anything).Return(nil)

	const cap = 40
	u := &elo_usecases.ApplyRatingsUseCase{
		Matches:        matches,
		MatchWriter:    matchWriter,
		Participants:   partReader,
		Scores:         scoreReader,
		LadderStates:   ladderReader,
		LadderStateW:   ladderWriter,
		RatingEvents:   ratingEvents,
		ProvisionalMax: 5,
		ProvisionalCap: cap,
	}

	err := u.ApplyRatings(context.Background(), matchID)
	assert.NoError(t, err)

	assert.LessOrEqual(t, stateA1.Rating-600, cap)
	assert.GreaterOrEqual(t, stateB1.Rating-1400, -cap)
}
