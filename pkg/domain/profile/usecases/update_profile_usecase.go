package profile_usecases

import (
	"strings"
	"time"

	"context"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_in "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/in"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
)

// ladderForGender maps a resolved gender to its primary (non-MX) ladder
// (original_source/backend/app/modules/me/api.py PATCH /me/profile).
func ladderForGender(g profile_entities.Gender) profile_entities.Ladder {
	if g == profile_entities.GenderMale {
		return profile_entities.LadderHM
	}
	return profile_entities.LadderWM
}

// UpdateProfileUseCase backs PATCH /me/profile. Besides the direct column
// patch it derives and upserts UserLadderState rows for the primary ladder
// and its MX mirror whenever primary_category_code is supplied.
type UpdateProfileUseCase struct {
	Profiles     profile_out.UserProfileWriter
	ProfileR     profile_out.UserProfileReader
	Categories   profile_out.CategoryReader
	MxMap        profile_out.MxCategoryMapReader
	LadderStateW profile_out.UserLadderStateWriter
	LadderStateR profile_out.UserLadderStateReader
}

func NewUpdateProfileUseCase(
	profiles profile_out.UserProfileWriter,
	profileR profile_out.UserProfileReader,
	categories profile_out.CategoryReader,
	mxMap profile_out.MxCategoryMapReader,
	ladderStateW profile_out.UserLadderStateWriter,
	ladderStateR profile_out.UserLadderStateReader,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		Profiles:     profiles,
		ProfileR:     profileR,
		Categories:   categories,
		MxMap:        mxMap,
		LadderStateW: ladderStateW,
		LadderStateR: ladderStateR,
	}
}

func (u *UpdateProfileUseCase) Handle(ctx context.Context, cmd profile_in.UpdateProfileCommand) (*profile_entities.UserProfile, error) {
	profile, err := u.ProfileR.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, common.NewErrNotFound(common.ResourceTypeUserProfile, "user_id", cmd.UserID)
	}

	if cmd.Alias != nil {
		alias := strings.ToLower(strings.TrimSpace(*cmd.Alias))
		if alias == "" {
			return nil, common.NewErrInvalidInput("alias cannot be empty")
		}
		if alias != strings.ToLower(profile.Alias) {
			existing, err := u.ProfileR.FindByAlias(ctx, alias)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.UserID != profile.UserID {
				return nil, common.NewErrAlreadyExists(common.ResourceTypeUserProfile, "alias", alias)
			}
		}
		profile.Alias = alias
	}

	var resolvedGender profile_entities.Gender
	if cmd.Gender != nil {
		g := *cmd.Gender
		if g != profile_entities.GenderMale && g != profile_entities.GenderFemale {
			return nil, common.NewErrInvalidInput("gender must be M or F")
		}
		profile.Gender = g
		resolvedGender = g
	} else {
		resolvedGender = profile.Gender
	}

	if cmd.IsPublic != nil {
		profile.IsPublic = *cmd.IsPublic
	}
	if cmd.Country != nil {
		profile.Country = *cmd.Country
	}
	if cmd.City != nil {
		profile.City = *cmd.City
	}
	if cmd.Handedness != nil {
		profile.Handedness = *cmd.Handedness
	}
	if cmd.PreferredSide != nil {
		profile.PreferredSide = *cmd.PreferredSide
	}
	if cmd.AvatarMode != nil {
		profile.AvatarMode = *cmd.AvatarMode
	}
	if cmd.AvatarPresetKey != nil {
		profile.AvatarPresetKey = *cmd.AvatarPresetKey
	}
	if cmd.AvatarURL != nil {
		profile.AvatarURL = *cmd.AvatarURL
	}
	if !profile.ValidAvatar() {
		return nil, common.NewErrInvalidInput("avatar_preset_key or avatar_url required for the selected avatar_mode")
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := u.Profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	if cmd.PrimaryCategoryCode != nil {
		if !resolvedGender.IsPlayable() {
			return nil, common.NewErrInvalidInput("gender must be set before choosing a category")
		}
		if err := u.applyPrimaryCategory(ctx, profile.UserID, resolvedGender, *cmd.PrimaryCategoryCode); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func (u *UpdateProfileUseCase) applyPrimaryCategory(ctx context.Context, userID uuid.UUID, gender profile_entities.Gender, code string) error {
	primaryLadder := ladderForGender(gender)

	primaryCategory, err := u.Categories.FindByLadderAndCode(ctx, primaryLadder, code)
	if err != nil {
		return err
	}
	if primaryCategory == nil {
		return common.NewErrInvalidInput("unknown category code for ladder " + string(primaryLadder))
	}
	if err := u.upsertLadderState(ctx, userID, primaryLadder, primaryCategory.ID); err != nil {
		return err
	}

	mapping, err := u.MxMap.FindMapping(ctx, gender, code)
	if err != nil {
		return err
	}
	if mapping == nil {
		return nil
	}

	mxCategory, err := u.Categories.FindByLadderAndCode(ctx, profile_entities.LadderMX, mapping.MxCode)
	if err != nil {
		return err
	}
	if mxCategory == nil {
		return nil
	}
	return u.upsertLadderState(ctx, userID, profile_entities.LadderMX, mxCategory.ID)
}

// upsertLadderState mirrors _upsert_ladder_state: no-op if the category is
// unchanged, reject if verified matches already exist under a different
// category, otherwise move the (still-unplayed) row or insert a fresh one.
func (u *UpdateProfileUseCase) upsertLadderState(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, categoryID uuid.UUID) error {
	existing, err := u.LadderStateR.FindByUserAndLadder(ctx, userID, ladder)
	if err != nil {
		return err
	}
	if existing == nil {
		state := profile_entities.NewUserLadderState(userID, ladder, categoryID, 0)
		return u.LadderStateW.Create(ctx, state)
	}
	if existing.CategoryID == categoryID {
		return nil
	}
	if !existing.CanChangeCategory() {
		return common.NewErrBadRequest("cannot change category after verified matches have been recorded")
	}
	existing.CategoryID = categoryID
	existing.UpdatedAt = time.Now().UTC()
	return u.LadderStateW.Update(ctx, existing)
}
