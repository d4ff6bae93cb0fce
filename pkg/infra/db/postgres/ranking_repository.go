package postgres

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	ranking_entities "github.com/rivio-api/rivio-api/pkg/domain/ranking/entities"
	ranking_out "github.com/rivio-api/rivio-api/pkg/domain/ranking/ports/out"
)

// RankingRepository implements ranking_out.RankingReader directly against
// user_ladder_states joined to user_profiles, as a single hand-written query
// rather than a generic query-service pipeline — see DESIGN.md.
type RankingRepository struct {
	DB *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{DB: db}
}

const rankingLimit = 200

func (r *RankingRepository) ListRanking(ctx context.Context, scope ranking_out.RankingScope) ([]*ranking_entities.RankingRow, error) {
	q := `SELECT s.user_id, p.alias, s.category_id, s.rating, s.verified_matches,
			s.is_provisional, p.country, p.city
		FROM user_ladder_states s
		JOIN user_profiles p ON p.user_id = s.user_id
		WHERE p.is_public = true AND s.ladder_code = $1 AND s.category_id = $2`
	args := []interface{}{scope.LadderCode, scope.CategoryID}

	if scope.Country != "" {
		args = append(args, scope.Country)
		q += ` AND lower(p.country) = lower($` + strconv.Itoa(len(args)) + `)`
	}
	if scope.City != "" {
		args = append(args, scope.City)
		q += ` AND lower(p.city) = lower($` + strconv.Itoa(len(args)) + `)`
	}
	q += ` ORDER BY s.rating DESC, s.verified_matches DESC LIMIT ` + strconv.Itoa(rankingLimit)

	type row struct {
		UserID          uuid.UUID `db:"user_id"`
		Alias           string    `db:"alias"`
		CategoryID      uuid.UUID `db:"category_id"`
		Rating          int       `db:"rating"`
		VerifiedMatches int       `db:"verified_matches"`
		IsProvisional   bool      `db:"is_provisional"`
		Country         string    `db:"country"`
		City            string    `db:"city"`
	}
	var rows []row
	if err := r.DB.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}

	out := make([]*ranking_entities.RankingRow, 0, len(rows))
	for i, rr := range rows {
		out = append(out, &ranking_entities.RankingRow{
			UserID:          rr.UserID,
			Alias:           rr.Alias,
			LadderCode:      scope.LadderCode,
			CategoryID:      rr.CategoryID,
			Rating:          rr.Rating,
			VerifiedMatches: rr.VerifiedMatches,
			IsProvisional:   rr.IsProvisional,
			Country:         rr.Country,
			City:            rr.City,
			Rank:            i + 1,
		})
	}
	return out, nil
}
