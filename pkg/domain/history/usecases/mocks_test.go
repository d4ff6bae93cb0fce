package history_usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	history_out "github.com/rivio-api/rivio-api/pkg/domain/history/ports/out"
)

type mockMatchHistoryReader struct{ mock.Mock }

func (m *mockMatchHistoryReader) ListForUser(ctx context.Context, userID uuid.UUID, scope string) ([]*history_out.RawMatchRow, error) {
	args := m.Called(ctx, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*history_out.RawMatchRow), args.Error(1)
}

func (m *mockMatchHistoryReader) GetForUser(ctx context.Context, userID, matchID uuid.UUID) (*history_out.RawMatchRow, error) {
	args := m.Called(ctx, userID, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*history_out.RawMatchRow), args.Error(1)
}

type mockProfileVisibilityReader struct{ mock.Mock }

func (m *mockProfileVisibilityReader) IsPublic(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
