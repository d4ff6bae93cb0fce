package profile_usecases

import (
	"context"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_in "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/in"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
)

// PlayEligibilityUseCase backs GET /me/play-eligibility (original_source
// modules/me/api.py). A user can play once their alias is customized,
// gender is M or F, and they hold a UserLadderState in every ladder their
// gender requires (M: HM+MX, F: WM+MX).
type PlayEligibilityUseCase struct {
	Profiles     profile_out.UserProfileReader
	LadderStates profile_out.UserLadderStateReader
}

func NewPlayEligibilityUseCase(profiles profile_out.UserProfileReader, ladderStates profile_out.UserLadderStateReader) *PlayEligibilityUseCase {
	return &PlayEligibilityUseCase{Profiles: profiles, LadderStates: ladderStates}
}

func requiredLaddersForGender(g profile_entities.Gender) []profile_entities.Ladder {
	switch g {
	case profile_entities.GenderMale:
		return []profile_entities.Ladder{profile_entities.LadderHM, profile_entities.LadderMX}
	case profile_entities.GenderFemale:
		return []profile_entities.Ladder{profile_entities.LadderWM, profile_entities.LadderMX}
	default:
		return nil
	}
}

func (u *PlayEligibilityUseCase) Handle(ctx context.Context, userID uuid.UUID) (*profile_in.PlayEligibilityResult, error) {
	profile, err := u.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var missing []string

	if profile == nil || profile.IsPlaceholderAlias() {
		missing = append(missing, "usuario")
	}

	gender := profile_entities.GenderUnknown
	if profile != nil {
		gender = profile.Gender
	}
	if !gender.IsPlayable() {
		missing = append(missing, "género")
	}

	if gender.IsPlayable() {
		states, err := u.LadderStates.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		have := make(map[profile_entities.Ladder]bool, len(states))
		for _, s := range states {
			have[s.LadderCode] = true
		}
		for _, required := range requiredLaddersForGender(gender) {
			if !have[required] {
				missing = append(missing, "categoría")
				break
			}
		}
	}

	eligible := len(missing) == 0
	result := &profile_in.PlayEligibilityResult{
		CanPlay:        eligible,
		CanCreateMatch: eligible,
		CanBeInvited:   eligible,
		Missing:        missing,
	}
	if !eligible {
		result.Message = "complete tu perfil para poder jugar"
	}
	return result, nil
}
