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
	history_out "github.com/rivio-api/rivio-api/pkg/domain/history/ports/out"
	history_usecases "github.com/rivio-api/rivio-api/pkg/domain/history/usecases"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

func sampleRawRow(viewer, created uuid.UUID) *history_out.RawMatchRow {
	matchID := uuid.New()
	rival1, rival2, teammate := uuid.New(), uuid.New(), uuid.New()
	return &history_out.RawMatchRow{
		Match: &match_entities.Match{
			ID:         matchID,
			LadderCode: profile_entities.LadderHM,
			CreatedBy:  created,
			Status:     match_entities.MatchStatusVerified,
		},
		Participants: []history_out.RawParticipant{
			{UserID: viewer, Alias: "viewer_alias", IsPublic: true, TeamNo: match_entities.Team1, ConfirmationStatus: match_entities.ConfirmationConfirmed},
			{UserID: teammate, Alias: "teammate_alias", IsPublic: true, TeamNo: match_entities.Team1, ConfirmationStatus: match_entities.ConfirmationConfirmed},
			{UserID: rival1, Alias: "rival1_alias", IsPublic: false, TeamNo: match_entities.Team2, ConfirmationStatus: match_entities.ConfirmationConfirmed},
			{UserID: rival2, Alias: "rival2_alias", IsPublic: true, TeamNo: match_entities.Team2, ConfirmationStatus: match_entities.ConfirmationConfirmed},
		},
		Score: &match_entities.Score{Sets: []match_entities.ScoreSet{{T1: 6, T2: 2}, {T1: 6, T2: 3}}},
	}
}

func TestTimeline_SelfCanRequestAnyScope(t *testing.T) {
	viewer := uuid.New()
	raw := sampleRawRow(viewer, viewer)

	matches := new(mockMatchHistoryReader)
	matches.On("ListForUser", mock.Anything, viewer, string(history_entities.ScopeAll)).Return([]*history_out.RawMatchRow{raw}, nil)

	u := history_usecases.NewTimelineUseCase(matches, new(mockProfileVisibilityReader))
	rows, err := u.Handle(context.Background(), history_in.TimelineQuery{Viewer: viewer, TargetUser: viewer, Scope: history_entities.ScopeAll})

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "rival1_alias", rows[0].RivalAliases[0])
}

func TestTimeline_NonSelfRestrictedToVerifiedAndPublicTarget(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()

	u := history_usecases.NewTimelineUseCase(new(mockMatchHistoryReader), new(mockProfileVisibilityReader))
	_, err := u.Handle(context.Background(), history_in.TimelineQuery{Viewer: viewer, TargetUser: target, Scope: history_entities.ScopeAll})

	assert.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))
}

func TestTimeline_NonSelfVerifiedButTargetNotPublic(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()

	profiles := new(mockProfileVisibilityReader)
	profiles.On("IsPublic", mock.Anything, target).Return(false, nil)

	u := history_usecases.NewTimelineUseCase(new(mockMatchHistoryReader), profiles)
	_, err := u.Handle(context.Background(), history_in.TimelineQuery{Viewer: viewer, TargetUser: target, Scope: history_entities.ScopeVerified})

	assert.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))
}

func TestTimeline_MasksNonPublicRivalAliasForNonSelfViewer(t *testing.T) {
	viewer := uuid.New()
	target := uuid.New()
	raw := sampleRawRow(target, target)

	profiles := new(mockProfileVisibilityReader)
	profiles.On("IsPublic", mock.Anything, target).Return(true, nil)

	matches := new(mockMatchHistoryReader)
	matches.On("ListForUser", mock.Anything, target, string(history_entities.ScopeVerified)).Return([]*history_out.RawMatchRow{raw}, nil)

	u := history_usecases.NewTimelineUseCase(matches, profiles)
	rows, err := u.Handle(context.Background(), history_in.TimelineQuery{Viewer: viewer, TargetUser: target, Scope: history_entities.ScopeVerified})

	assert.NoError(t, err)
	assert.Contains(t, rows[0].RivalAliases, history_entities.MaskedAlias)
	assert.Contains(t, rows[0].RivalAliases, "rival2_alias")
}
