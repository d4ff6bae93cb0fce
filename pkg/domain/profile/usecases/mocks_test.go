package profile_usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type mockProfileWriter struct{ mock.Mock }

func (m *mockProfileWriter) Create(ctx context.Context, p *profile_entities.UserProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProfileWriter) Update(ctx context.Context, p *profile_entities.UserProfile) error {
	return m.Called(ctx, p).Error(0)
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

type mockMxMapReader struct{ mock.Mock }

func (m *mockMxMapReader) FindMapping(ctx context.Context, gender profile_entities.Gender, primaryCode string) (*profile_entities.MxCategoryMap, error) {
	args := m.Called(ctx, gender, primaryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile_entities.MxCategoryMap), args.Error(1)
}

type mockLadderStateWriter struct{ mock.Mock }

func (m *mockLadderStateWriter) Create(ctx context.Context, s *profile_entities.UserLadderState) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockLadderStateWriter) Update(ctx context.Context, s *profile_entities.UserLadderState) error {
	return m.Called(ctx, s).Error(0)
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
