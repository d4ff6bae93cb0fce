package profile_usecases

import (
	"context"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
)

const searchResultLimit = 20

// GetProfileUseCase backs GET /me and public profile lookups.
type GetProfileUseCase struct {
	Profiles profile_out.UserProfileReader
}

func NewGetProfileUseCase(profiles profile_out.UserProfileReader) *GetProfileUseCase {
	return &GetProfileUseCase{Profiles: profiles}
}

func (u *GetProfileUseCase) Handle(ctx context.Context, userID uuid.UUID) (*profile_entities.UserProfile, error) {
	profile, err := u.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, common.NewErrNotFound(common.ResourceTypeUserProfile, "user_id", userID)
	}
	return profile, nil
}

// ListLadderStatesUseCase backs GET /me/ladder-states.
type ListLadderStatesUseCase struct {
	LadderStates profile_out.UserLadderStateReader
}

func NewListLadderStatesUseCase(ladderStates profile_out.UserLadderStateReader) *ListLadderStatesUseCase {
	return &ListLadderStatesUseCase{LadderStates: ladderStates}
}

func (u *ListLadderStatesUseCase) Handle(ctx context.Context, userID uuid.UUID) ([]*profile_entities.UserLadderState, error) {
	return u.LadderStates.ListByUser(ctx, userID)
}

// SearchProfilesUseCase backs GET /users/search?q= (original_source
// routes/users.py): public profiles only, capped at searchResultLimit.
type SearchProfilesUseCase struct {
	Profiles profile_out.UserProfileReader
}

func NewSearchProfilesUseCase(profiles profile_out.UserProfileReader) *SearchProfilesUseCase {
	return &SearchProfilesUseCase{Profiles: profiles}
}

func (u *SearchProfilesUseCase) Handle(ctx context.Context, query string) ([]*profile_entities.UserProfile, error) {
	if query == "" {
		return nil, common.NewErrInvalidInput("q is required")
	}
	return u.Profiles.SearchByAliasPrefix(ctx, query, searchResultLimit)
}
