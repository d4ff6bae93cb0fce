package command

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_in "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/in"
)

// ProfileController handles PATCH /me/profile.
type ProfileController struct {
	helper *controllers.ControllerHelper

	updateProfile profile_in.UpdateProfileCommandHandler
}

func NewProfileController(c container.Container) *ProfileController {
	ctl := &ProfileController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.updateProfile); err != nil {
		panic(err)
	}
	return ctl
}

type updateProfileRequest struct {
	Alias               *string                      `json:"alias,omitempty"`
	Gender              *profile_entities.Gender     `json:"gender,omitempty"`
	IsPublic            *bool                        `json:"is_public,omitempty"`
	Country             *string                      `json:"country,omitempty"`
	City                *string                      `json:"city,omitempty"`
	Handedness          *string                      `json:"handedness,omitempty"`
	PreferredSide       *string                      `json:"preferred_side,omitempty"`
	AvatarMode          *profile_entities.AvatarMode `json:"avatar_mode,omitempty"`
	AvatarPresetKey     *string                      `json:"avatar_preset_key,omitempty"`
	AvatarURL           *string                      `json:"avatar_url,omitempty"`
	PrimaryCategoryCode *string                      `json:"primary_category_code,omitempty"`
}

func (ctl *ProfileController) UpdateProfile(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}

		var req updateProfileRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		profile, err := ctl.updateProfile.Handle(r.Context(), profile_in.UpdateProfileCommand{
			UserID:              userID,
			Alias:               req.Alias,
			Gender:              req.Gender,
			IsPublic:            req.IsPublic,
			Country:             req.Country,
			City:                req.City,
			Handedness:          req.Handedness,
			PreferredSide:       req.PreferredSide,
			AvatarMode:          req.AvatarMode,
			AvatarPresetKey:     req.AvatarPresetKey,
			AvatarURL:           req.AvatarURL,
			PrimaryCategoryCode: req.PrimaryCategoryCode,
		})
		if ctl.helper.HandleError(w, r, err, "update profile") {
			return
		}
		ctl.helper.WriteOK(w, r, profile)
	}
}
