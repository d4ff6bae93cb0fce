package query

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	profile_in "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/in"
)

// ProfileQueryController handles GET /me/profile, /me/eligibility,
// /me/ladders, /players/{id}, /players/search.
type ProfileQueryController struct {
	helper *controllers.ControllerHelper

	getProfile      profile_in.GetProfileQueryHandler
	eligibility     profile_in.PlayEligibilityQueryHandler
	listLadders     profile_in.ListLadderStatesQueryHandler
	searchProfiles  profile_in.SearchProfilesQueryHandler
}

func NewProfileQueryController(c container.Container) *ProfileQueryController {
	ctl := &ProfileQueryController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.getProfile); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.eligibility); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.listLadders); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.searchProfiles); err != nil {
		panic(err)
	}
	return ctl
}

func (ctl *ProfileQueryController) GetMyProfile(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		profile, err := ctl.getProfile.Handle(r.Context(), userID)
		if ctl.helper.HandleError(w, r, err, "get profile") {
			return
		}
		ctl.helper.WriteOK(w, r, profile)
	}
}

func (ctl *ProfileQueryController) GetPlayerProfile(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := mux.Vars(r)["id"]
		playerID, err := uuid.Parse(idParam)
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "invalid player id")
			return
		}
		profile, err := ctl.getProfile.Handle(r.Context(), playerID)
		if ctl.helper.HandleError(w, r, err, "get player profile") {
			return
		}
		ctl.helper.WriteOK(w, r, profile)
	}
}

func (ctl *ProfileQueryController) GetEligibility(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		result, err := ctl.eligibility.Handle(r.Context(), userID)
		if ctl.helper.HandleError(w, r, err, "get play eligibility") {
			return
		}
		ctl.helper.WriteOK(w, r, result)
	}
}

func (ctl *ProfileQueryController) ListMyLadders(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		ladders, err := ctl.listLadders.Handle(r.Context(), userID)
		if ctl.helper.HandleError(w, r, err, "list ladder states") {
			return
		}
		ctl.helper.WriteOK(w, r, ladders)
	}
}

func (ctl *ProfileQueryController) SearchPlayers(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		profiles, err := ctl.searchProfiles.Handle(r.Context(), q)
		if ctl.helper.HandleError(w, r, err, "search profiles") {
			return
		}
		ctl.helper.WriteOK(w, r, profiles)
	}
}
