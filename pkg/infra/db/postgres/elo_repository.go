package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	elo_entities "github.com/rivio-api/rivio-api/pkg/domain/elo/entities"
)

// RatingEventRepository implements elo_out.RatingEventWriter/Reader.
type RatingEventRepository struct {
	DB *sqlx.DB
}

func NewRatingEventRepository(db *sqlx.DB) *RatingEventRepository {
	return &RatingEventRepository{DB: db}
}

func (r *RatingEventRepository) Create(ctx context.Context, event *elo_entities.RatingEvent) error {
	const q = `INSERT INTO rating_events (id, match_id, user_id, ladder_code, old_rating, new_rating, delta, k_factor, weight, created_at)
		VALUES (:id, :match_id, :user_id, :ladder_code, :old_rating, :new_rating, :delta, :k_factor, :weight, :created_at)`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, event)
	return err
}

func (r *RatingEventRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*elo_entities.RatingEvent, error) {
	const q = `SELECT id, match_id, user_id, ladder_code, old_rating, new_rating, delta, k_factor, weight, created_at
		FROM rating_events WHERE match_id=$1 ORDER BY created_at`
	var rows []*elo_entities.RatingEvent
	err := Q(ctx, r.DB).SelectContext(ctx, &rows, q, matchID)
	return rows, err
}
