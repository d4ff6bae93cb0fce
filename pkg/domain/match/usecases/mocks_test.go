package match_usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type mockTransactor struct{}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockMatchWriter struct{ mock.Mock }

func (m *mockMatchWriter) Create(ctx context.Context, match *match_entities.Match, participants []*match_entities.MatchParticipant, score *match_entities.MatchScore, confirmations []*match_entities.MatchConfirmation) error {
	return m.Called(ctx, match, participants, score, confirmations).Error(0)
}

func (m *mockMatchWriter) Update(ctx context.Context, match *match_entities.Match) error {
	return m.Called(ctx, match).Error(0)
}

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

type mockClubReader struct{ mock.Mock }

func (m *mockClubReader) IsActiveClub(ctx context.Context, clubID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clubID)
	return args.Bool(0), args.Error(1)
}

type mockProfileReader struct{ mock.Mock }

func (m *mockProfileReader) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile_entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.UserProfile), args.Error(1)
}

func (m *mockProfileReader) FindByAlias(ctx context.Context, alias string) (*profile_entities.UserProfile, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.UserProfile), args.Error(1)
}

func (m *mockProfileReader) SearchByAliasPrefix(ctx context.Context, query string, limit int) ([]*profile_entities.UserProfile, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile_entities.UserProfile), args.Error(1)
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

type mockCategoryReader struct{ mock.Mock }

func (m *mockCategoryReader) FindByID(ctx context.Context, id uuid.UUID) (*profile_entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.Category), args.Error(1)
}

func (m *mockCategoryReader) FindByLadderAndCode(ctx context.Context, ladder profile_entities.Ladder, code string) (*profile_entities.Category, error) {
	args := m.Called(ctx, ladder, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.Category), args.Error(1)
}

func (m *mockCategoryReader) ListByLadder(ctx context.Context, ladder profile_entities.Ladder) ([]*profile_entities.Category, error) {
	args := m.Called(ctx, ladder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profile_entities.Category), args.Error(1)
}

type mockIdentityVerifier struct{ mock.Mock }

func (m *mockIdentityVerifier) HasVerifiedIdentity(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type mockParticipantReader struct{ mock.Mock }

func (m *mockParticipantReader) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchParticipant, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match_entities.MatchParticipant), args.Error(1)
}

type mockScoreWriter struct{ mock.Mock }

func (m *mockScoreWriter) Replace(ctx context.Context, score *match_entities.MatchScore) error {
	return m.Called(ctx, score).Error(0)
}

type mockScoreReader struct{ mock.Mock }

func (m *mockScoreReader) FindByMatch(ctx context.Context, matchID uuid.UUID) (*match_entities.MatchScore, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match_entities.MatchScore), args.Error(1)
}

type mockConfirmationWriter struct{ mock.Mock }

func (m *mockConfirmationWriter) Upsert(ctx context.Context, confirmation *match_entities.MatchConfirmation) error {
	return m.Called(ctx, confirmation).Error(0)
}

func (m *mockConfirmationWriter) ResetAllToPending(ctx context.Context, matchID uuid.UUID) error {
	return m.Called(ctx, matchID).Error(0)
}

type mockConfirmationReader struct{ mock.Mock }

func (m *mockConfirmationReader) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchConfirmation, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match_entities.MatchConfirmation), args.Error(1)
}

type mockDisputeWriter struct{ mock.Mock }

func (m *mockDisputeWriter) Create(ctx context.Context, dispute *match_entities.MatchDispute) error {
	return m.Called(ctx, dispute).Error(0)
}

type mockRatingEngine struct{ mock.Mock }

func (m *mockRatingEngine) ApplyRatings(ctx context.Context, matchID uuid.UUID) error {
	return m.Called(ctx, matchID).Error(0)
}

type mockAnalyticsProjector struct{ mock.Mock }

func (m *mockAnalyticsProjector) ProjectMatch(ctx context.Context, matchID uuid.UUID) error {
	return m.Called(ctx, matchID).Error(0)
}

type mockAuditRecorder struct{ mock.Mock }

func (m *mockAuditRecorder) Record(ctx context.Context, actorUserID *uuid.UUID, entityType, entityID, action string, data map[string]interface{}) error {
	args := m.Called(ctx, actorUserID, entityType, entityID, action, data)
	return args.Error(0)
}
