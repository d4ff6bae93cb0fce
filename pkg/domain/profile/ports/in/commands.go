package profile_in

import (
	"context"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// EnsureProfileHandler implements identity_out.ProfileProvisioner; kept as
// its own interface here so the profile package's wiring doesn't need to
// import identity_out just to satisfy it structurally.
type EnsureProfileHandler interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID) error
}

// UpdateProfileCommand is the PATCH /me/profile payload (original_source
// schemas/me.py ProfileUpdateIn). Pointer fields distinguish "not sent" from
// zero-value.
type UpdateProfileCommand struct {
	UserID              uuid.UUID
	Alias               *string
	Gender              *profile_entities.Gender
	IsPublic            *bool
	Country             *string
	City                *string
	Handedness          *string
	PreferredSide       *string
	AvatarMode          *profile_entities.AvatarMode
	AvatarPresetKey     *string
	AvatarURL           *string
	PrimaryCategoryCode *string
}

type UpdateProfileCommandHandler interface {
	Handle(ctx context.Context, cmd UpdateProfileCommand) (*profile_entities.UserProfile, error)
}

type PlayEligibilityResult struct {
	CanPlay         bool
	CanCreateMatch  bool
	CanBeInvited    bool
	Missing         []string
	Message         string
}

type PlayEligibilityQueryHandler interface {
	Handle(ctx context.Context, userID uuid.UUID) (*PlayEligibilityResult, error)
}

type GetProfileQueryHandler interface {
	Handle(ctx context.Context, userID uuid.UUID) (*profile_entities.UserProfile, error)
}

type ListLadderStatesQueryHandler interface {
	Handle(ctx context.Context, userID uuid.UUID) ([]*profile_entities.UserLadderState, error)
}

type SearchProfilesQueryHandler interface {
	Handle(ctx context.Context, query string) ([]*profile_entities.UserProfile, error)
}
