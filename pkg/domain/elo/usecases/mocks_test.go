package elo_usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	elo_entities "github.com/rivio-api/rivio-api/pkg/domain/elo/entities"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type mockMatchReader struct{ mock.Mock }

func (m *mockMatchReader) FindByID(ctx context.Context, id uuid.UUID) (*match_entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match_entities.Match), args.Error(1)
}

func (m *mockMatchReader) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*match_entities.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match_entities.Match), args.Error(1)
}

func (m *mockMatchReader) CountOpenByCreator(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockMatchReader) CountBlockingByCreatorSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

type mockMatchWriter struct{ mock.Mock }

func (m *mockMatchWriter) Create(ctx context.Context, match *match_entities.Match, participants []*match_entities.MatchParticipant, score *match_entities.MatchScore, confirmations []*match_entities.MatchConfirmation) error {
	return m.Called(ctx, match, participants, score, confirmations).Error(0)
}

func (m *mockMatchWriter) Update(ctx context.Context, match *match_entities.Match) error {
	return m.Called(ctx, match).Error(0)
}

type mockParticipantReader struct{ mock.Mock }

func (m *mockParticipantReader) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchParticipant, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match_entities.MatchParticipant), args.Error(1)
}

type mockScoreReader struct{ mock.Mock }

func (m *mockScoreReader) FindByMatch(ctx context.Context, matchID uuid.UUID) (*match_entities.MatchScore, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match_entities.MatchScore), args.Error(1)
}

type mockLadderStateReader struct{ mock.Mock }

func (m *mockLadderStateReader) FindByUserAndLadder(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*profile_entities.UserLadderState, error) {
	args := m.Called(ctx, userID, ladder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.UserLadderState), args.Error(1)
}

func (m *mockLadderStateReader) FindByUserAndLadderForUpdate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*profile_entities.UserLadderState, error) {
	args := m.Called(ctx, userID, ladder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.UserLadderState), args.Error(1)
}

func (m *mockLadderStateReader) ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile_entities.UserLadderState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile_entities.UserLadderState), args.Error(1)
}

type mockLadderStateWriter struct{ mock.Mock }

func (m *mockLadderStateWriter) Create(ctx context.Context, state *profile_entities.UserLadderState) error {
	return m.Called(ctx, state).Error(0)
}

func (m *mockLadderStateWriter) Update(ctx context.Context, state *profile_entities.UserLadderState) error {
	return m.Called(ctx, state).Error(0)
}

type mockRatingEventWriter struct{ mock.Mock }

func (m *mockRatingEventWriter) Create(ctx context.Context, event *elo_entities.RatingEvent) error {
	return m.Called(ctx, event).Error(0)
}
