package query

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	controllers "github.com/rivio-api/rivio-api/cmd/rest-api/controllers"
	common "github.com/rivio-api/rivio-api/pkg/domain"
	ranking_in "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/in"
)

// RankingQueryController handles GET /rankings/{ladder}/{category_id}.
type RankingQueryController struct {
	helper *controllers.ControllerHelper

	getRanking ranking_in.GetRankingQueryHandler
}

func NewRankingQueryController(c container.Container) *RankingQueryController {
	ctl := &RankingQueryController{helper: controllers.NewControllerHelper()}
	if err := c.Resolve(&ctl.getRanking); err != nil {
		panic(err)
	}
	return ctl
}

func (ctl *RankingQueryController) GetRanking(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		categoryID, err := uuid.Parse(vars["category_id"])
		if err != nil {
			ctl.helper.WriteBadRequest(w, r, "invalid category id")
			return
		}

		rows, err := ctl.getRanking.Handle(r.Context(), ranking_in.GetRankingQuery{
			LadderCode: common.LadderCode(vars["ladder"]),
			CategoryID: categoryID,
			Country:    r.URL.Query().Get("country"),
			City:       r.URL.Query().Get("city"),
		})
		if ctl.helper.HandleError(w, r, err, "get ranking") {
			return
		}
		ctl.helper.WriteOK(w, r, rows)
	}
}
