package profile_out

import (
	"context"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type UserProfileWriter interface {
	Create(ctx context.Context, profile *profile_entities.UserProfile) error
	Update(ctx context.Context, profile *profile_entities.UserProfile) error
}

type UserProfileReader interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*profile_entities.UserProfile, error)
	// FindByAlias is case-insensitive.
	FindByAlias(ctx context.Context, alias string) (*profile_entities.UserProfile, error)
	// SearchByAliasPrefix backs GET /users/search?q= (original_source
	// routes/users.py): public profiles only, LIMIT capped by the caller.
	SearchByAliasPrefix(ctx context.Context, query string, limit int) ([]*profile_entities.UserProfile, error)
}

type CategoryReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*profile_entities.Category, error)
	FindByLadderAndCode(ctx context.Context, ladder profile_entities.Ladder, code string) (*profile_entities.Category, error)
	ListByLadder(ctx context.Context, ladder profile_entities.Ladder) ([]*profile_entities.Category, error)
}

// MxCategoryMapReader reads the static (gender,primary_code)->(mx_code)
// mapping table (original_source migration 0002_categories_real_and_mx_map).
type MxCategoryMapReader interface {
	FindMapping(ctx context.Context, gender profile_entities.Gender, primaryCode string) (*profile_entities.MxCategoryMap, error)
}

type UserLadderStateWriter interface {
	Create(ctx context.Context, state *profile_entities.UserLadderState) error
	Update(ctx context.Context, state *profile_entities.UserLadderState) error
}

type UserLadderStateReader interface {
	FindByUserAndLadder(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*profile_entities.UserLadderState, error)
	// FindByUserAndLadderForUpdate row-locks the state for rating/match
	// transactions owned by the elo component.
	FindByUserAndLadderForUpdate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*profile_entities.UserLadderState, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile_entities.UserLadderState, error)
}
