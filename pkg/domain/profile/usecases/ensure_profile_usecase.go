package profile_usecases

import (
	"context"

	"github.com/google/uuid"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
	profile_services "github.com/rivio-api/rivio-api/pkg/domain/profile/services"
)

// EnsureProfileUseCase implements identity_out.ProfileProvisioner: it is
// invoked from register_complete so every User gets a UserProfile the
// instant their account exists.
type EnsureProfileUseCase struct {
	Profiles profile_out.UserProfileWriter
	Reader   profile_out.UserProfileReader
	Aliases  *profile_services.AliasGenerator
}

func NewEnsureProfileUseCase(profiles profile_out.UserProfileWriter, reader profile_out.UserProfileReader, aliases *profile_services.AliasGenerator) *EnsureProfileUseCase {
	return &EnsureProfileUseCase{Profiles: profiles, Reader: reader, Aliases: aliases}
}

// EnsureProfile is idempotent: a caller that races register_complete twice
// for the same user will find the profile already created on retry.
func (u *EnsureProfileUseCase) EnsureProfile(ctx context.Context, userID uuid.UUID) error {
	existing, err := u.Reader.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	alias, err := u.Aliases.Generate(ctx, identity_entities.ContactKindEmail, userID.String())
	if err != nil {
		return err
	}

	profile := profile_entities.NewUserProfile(userID, alias)
	return u.Profiles.Create(ctx, profile)
}
