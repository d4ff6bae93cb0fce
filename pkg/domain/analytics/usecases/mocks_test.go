package analytics_usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	analytics_entities "github.com/rivio-api/rivio-api/pkg/domain/analytics/entities"
	analytics_out "github.com/rivio-api/rivio-api/pkg/domain/analytics/ports/out"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type mockMatchContextReader struct{ mock.Mock }

func (m *mockMatchContextReader) LoadVerifiedMatch(ctx context.Context, matchID uuid.UUID) (*analytics_out.VerifiedMatchContext, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics_out.VerifiedMatchContext), args.Error(1)
}

func (m *mockMatchContextReader) LoadRatingMap(ctx context.Context, matchID uuid.UUID, ladder profile_entities.Ladder, participantIDs []uuid.UUID) (map[uuid.UUID]analytics_out.RatingMeta, error) {
	args := m.Called(ctx, matchID, ladder, participantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]analytics_out.RatingMeta), args.Error(1)
}

func (m *mockMatchContextReader) ListVerifiedMatchesForRebuild(ctx context.Context) ([]*analytics_out.VerifiedMatchContext, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*analytics_out.VerifiedMatchContext), args.Error(1)
}

type mockStateWriter struct{ mock.Mock }

func (m *mockStateWriter) EnsureExists(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) error {
	return m.Called(ctx, userID, ladder).Error(0)
}

func (m *mockStateWriter) LockForUpdate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*analytics_entities.UserAnalyticsState, error) {
	args := m.Called(ctx, userID, ladder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics_entities.UserAnalyticsState), args.Error(1)
}

func (m *mockStateWriter) Update(ctx context.Context, state *analytics_entities.UserAnalyticsState) error {
	return m.Called(ctx, state).Error(0)
}

func (m *mockStateWriter) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockMatchAppliedWriter struct{ mock.Mock }

func (m *mockMatchAppliedWriter) TryInsert(ctx context.Context, row *analytics_entities.UserAnalyticsMatchApplied, enforceIdempotency bool) (bool, error) {
	args := m.Called(ctx, row, enforceIdempotency)
	return args.Bool(0), args.Error(1)
}

func (m *mockMatchAppliedWriter) UpdateRollingSnapshot(ctx context.Context, userID, matchID uuid.UUID, rolling10, rolling20, rolling50 float64, streakType analytics_entities.StreakType, streakLen int) error {
	return m.Called(ctx, userID, matchID, rolling10, rolling20, rolling50, streakType, streakLen).Error(0)
}

func (m *mockMatchAppliedWriter) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockMatchAppliedWriter) CountRecentWindows(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, playedAt time.Time) (int, int, int, error) {
	args := m.Called(ctx, userID, ladder, playedAt)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

type mockPartnerStatsWriter struct{ mock.Mock }

func (m *mockPartnerStatsWriter) Upsert(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, partnerUserID uuid.UUID, isWin bool, playedAt time.Time) error {
	return m.Called(ctx, userID, ladder, partnerUserID, isWin, playedAt).Error(0)
}

func (m *mockPartnerStatsWriter) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockRivalStatsWriter struct{ mock.Mock }

func (m *mockRivalStatsWriter) Upsert(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, rivalUserID uuid.UUID, isWin bool, playedAt time.Time) error {
	return m.Called(ctx, userID, ladder, rivalUserID, isWin, playedAt).Error(0)
}

func (m *mockRivalStatsWriter) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCurrentRatingReader struct{ mock.Mock }

func (m *mockCurrentRatingReader) CurrentRating(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*int, error) {
	args := m.Called(ctx, userID, ladder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}
