package query

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	history_entities "github.com/rivio-api/rivio-api/pkg/domain/history/entities"
	history_in "github.com/rivio-api/rivio-api/pkg/domain/history/ports/in"
)

// HistoryQueryController handles GET /me/matches, /players/{id}/matches and
// /matches/{id}.
type HistoryQueryController struct {
	helper *controllers.ControllerHelper

	timeline    history_in.TimelineQueryHandler
	matchDetail history_in.MatchDetailQueryHandler
}

func NewHistoryQueryController(c container.Container) *HistoryQueryController {
	ctl := &HistoryQueryController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.timeline); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.matchDetail); err != nil {
		panic(err)
	}
	return ctl
}

func parseScope(r *http.Request) history_entities.Scope {
	switch r.URL.Query().Get("scope") {
	case "pending":
		return history_entities.ScopePending
	case "all":
		return history_entities.ScopeAll
	default:
		return history_entities.ScopeVerified
	}
}

func (ctl *HistoryQueryController) MyTimeline(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}
		rows, err := ctl.timeline.Handle(r.Context(), history_in.TimelineQuery{
			Viewer:     userID,
			TargetUser: userID,
			Scope:      parseScope(r),
		})
		if ctl.helper.HandleError(w, r, err, "get timeline") {
			return
		}
		ctl.helper.WriteOK(w, r, rows)
	}
}

func (ctl *HistoryQueryController) PlayerTimeline(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := common.RequireUserID(r.Context())

		targetUser, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "invalid player id")
			return
		}

		rows, err := ctl.timeline.Handle(r.Context(), history_in.TimelineQuery{
			Viewer:     viewer,
			TargetUser: targetUser,
			Scope:      parseScope(r),
		})
		if ctl.helper.HandleError(w, r, err, "get player timeline") {
			return
		}
		ctl.helper.WriteOK(w, r, rows)
	}
}

func (ctl *HistoryQueryController) MatchDetail(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := common.RequireUserID(r.Context())

		matchID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "invalid match id")
			return
		}

		detail, err := ctl.matchDetail.Handle(r.Context(), history_in.MatchDetailQuery{
			Viewer:  viewer,
			MatchID: matchID,
		})
		if ctl.helper.HandleError(w, r, err, "get match detail") {
			return
		}
		ctl.helper.WriteOK(w, r, detail)
	}
}
