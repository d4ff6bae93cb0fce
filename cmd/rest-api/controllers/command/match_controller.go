package command

import (
	"context"
	"net/http"
	"time"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_in "github.com/rivio-api/rivio-api/pkg/domain/match/ports/in"
)

// MatchController handles match submission, confirmation and disputes.
type MatchController struct {
	helper *controllers.ControllerHelper

	createMatch  match_in.CreateMatchCommandHandler
	confirmMatch match_in.ConfirmMatchCommandHandler
	disputeMatch match_in.DisputeMatchCommandHandler
}

func NewMatchController(c container.Container) *MatchController {
	ctl := &MatchController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.createMatch); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.confirmMatch); err != nil {
		panic(err)
	}
	if err := c.Resolve(&ctl.disputeMatch); err != nil {
		panic(err)
	}
	return ctl
}

type createMatchRequest struct {
	ParticipantA1 uuid.UUID               `json:"participant_a1"`
	ParticipantA2 uuid.UUID               `json:"participant_a2"`
	ParticipantB1 uuid.UUID               `json:"participant_b1"`
	ParticipantB2 uuid.UUID               `json:"participant_b2"`
	PlayedAt      time.Time               `json:"played_at"`
	ClubID        *uuid.UUID              `json:"club_id,omitempty"`
	ScoreSets     []match_entities.ScoreSet `json:"score_sets"`
	WinnerTeamNo  int                     `json:"winner_team_no"`
}

func (ctl *MatchController) CreateMatch(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}

		var req createMatchRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		match, err := ctl.createMatch.Handle(r.Context(), match_in.CreateMatchCommand{
			CreatedBy:     userID,
			ParticipantA1: req.ParticipantA1,
			ParticipantA2: req.ParticipantA2,
			ParticipantB1: req.ParticipantB1,
			ParticipantB2: req.ParticipantB2,
			PlayedAt:      req.PlayedAt,
			ClubID:        req.ClubID,
			ScoreSets:     req.ScoreSets,
			WinnerTeamNo:  req.WinnerTeamNo,
		})
		if ctl.helper.HandleError(w, r, err, "create match") {
			return
		}
		ctl.helper.WriteCreated(w, r, match)
	}
}

type confirmMatchRequest struct {
	Note      string                    `json:"note,omitempty"`
	ScoreSets []match_entities.ScoreSet `json:"score_sets,omitempty"`
}

func (ctl *MatchController) ConfirmMatch(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}

		matchID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "invalid match id")
			return
		}

		var req confirmMatchRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		match, err := ctl.confirmMatch.Handle(r.Context(), match_in.ConfirmMatchCommand{
			MatchID:   matchID,
			Actor:     userID,
			Note:      req.Note,
			Source:    match_entities.ConfirmationSourceManual,
			ScoreSets: req.ScoreSets,
			HasScore:  len(req.ScoreSets) > 0,
		})
		if ctl.helper.HandleError(w, r, err, "confirm match") {
			return
		}
		ctl.helper.WriteOK(w, r, match)
	}
}

type disputeMatchRequest struct {
	Reason string `json:"reason"`
}

func (ctl *MatchController) DisputeMatch(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := common.RequireUserID(r.Context())
		if !ok {
			ctl.helper.WriteBadRequest(w, r, "missing authenticated user")
			return
		}

		matchID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "invalid match id")
			return
		}

		var req disputeMatchRequest
		if err := ctl.helper.DecodeJSONRequest(w, r, &req); err != nil {
			return
		}

		match, err := ctl.disputeMatch.Handle(r.Context(), match_in.DisputeMatchCommand{
			MatchID: matchID,
			Actor:   userID,
			Reason:  req.Reason,
		})
		if ctl.helper.HandleError(w, r, err, "dispute match") {
			return
		}
		ctl.helper.WriteOK(w, r, match)
	}
}
