package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	history_entities "github.com/rivio-api/rivio-api/pkg/domain/history/entities"
	history_out "github.com/rivio-api/rivio-api/pkg/domain/history/ports/out"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// MatchHistoryRepository implements history_out.MatchHistoryReader, joining
// matches owned by the match domain with match_participants,
// match_confirmations, match_scores, and user_profiles — a read-side join
// across three domains' tables, the same cross-domain-read shape as
// analytics' MatchContextRepository.
type MatchHistoryRepository struct {
	DB *sqlx.DB
}

func NewMatchHistoryRepository(db *sqlx.DB) *MatchHistoryRepository {
	return &MatchHistoryRepository{DB: db}
}

func scopeFilter(scope string) string {
	switch history_entities.Scope(scope) {
	case history_entities.ScopeVerified:
		return ` AND m.status = '` + string(match_entities.MatchStatusVerified) + `'`
	case history_entities.ScopePending:
		return ` AND m.status IN ('` + string(match_entities.MatchStatusPendingConfirm) + `', '` + string(match_entities.MatchStatusDisputed) + `')`
	default:
		return ``
	}
}

func (r *MatchHistoryRepository) ListForUser(ctx context.Context, userID uuid.UUID, scope string) ([]*history_out.RawMatchRow, error) {
	q := `SELECT m.id FROM matches m
		JOIN match_participants mp ON mp.match_id = m.id
		WHERE mp.user_id = $1` + scopeFilter(scope) + `
		ORDER BY m.played_at DESC`
	var ids []uuid.UUID
	if err := r.DB.SelectContext(ctx, &ids, q, userID); err != nil {
		return nil, err
	}

	out := make([]*history_out.RawMatchRow, 0, len(ids))
	for _, id := range ids {
		row, err := r.loadRaw(ctx, id)
		if err != nil {
			return nil, err
		}
		if row != nil {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *MatchHistoryRepository) GetForUser(ctx context.Context, userID uuid.UUID, matchID uuid.UUID) (*history_out.RawMatchRow, error) {
	const q = `SELECT 1 FROM match_participants WHERE match_id=$1 AND user_id=$2`
	var exists int
	err := r.DB.GetContext(ctx, &exists, q, matchID, userID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.loadRaw(ctx, matchID)
}

func (r *MatchHistoryRepository) loadRaw(ctx context.Context, matchID uuid.UUID) (*history_out.RawMatchRow, error) {
	const matchQ = `SELECT ` + matchColumns + ` FROM matches WHERE id=$1`
	var match match_entities.Match
	if err := r.DB.GetContext(ctx, &match, matchQ, matchID); err != nil {
		return nil, NotFoundOrErr(err)
	}

	const creatorQ = `SELECT alias FROM user_profiles WHERE user_id=$1`
	var creatorAlias string
	if err := r.DB.GetContext(ctx, &creatorAlias, creatorQ, match.CreatedBy); err != nil && !IsNoRows(err) {
		return nil, err
	}

	const participantsQ = `SELECT mp.user_id, p.alias, p.is_public, p.gender, mp.team_no, c.status
		FROM match_participants mp
		JOIN user_profiles p ON p.user_id = mp.user_id
		JOIN match_confirmations c ON c.match_id = mp.match_id AND c.user_id = mp.user_id
		WHERE mp.match_id = $1
		ORDER BY mp.team_no, mp.user_id`
	var rawParticipants []struct {
		UserID             uuid.UUID                          `db:"user_id"`
		Alias              string                             `db:"alias"`
		IsPublic           bool                               `db:"is_public"`
		Gender             string                             `db:"gender"`
		TeamNo             match_entities.TeamNo               `db:"team_no"`
		ConfirmationStatus match_entities.ConfirmationStatus   `db:"status"`
	}
	if err := r.DB.SelectContext(ctx, &rawParticipants, participantsQ, matchID); err != nil {
		return nil, err
	}

	participants := make([]history_out.RawParticipant, 0, len(rawParticipants))
	for _, p := range rawParticipants {
		participants = append(participants, history_out.RawParticipant{
			UserID:             p.UserID,
			Alias:              p.Alias,
			IsPublic:           p.IsPublic,
			Gender:             profile_entities.Gender(p.Gender),
			TeamNo:             p.TeamNo,
			ConfirmationStatus: p.ConfirmationStatus,
		})
	}

	const scoreQ = `SELECT score_json, winner_team_no FROM match_scores WHERE match_id=$1`
	var scoreRow struct {
		ScoreJSON    []byte                `db:"score_json"`
		WinnerTeamNo match_entities.TeamNo `db:"winner_team_no"`
	}
	var score *match_entities.Score
	err := r.DB.GetContext(ctx, &scoreRow, scoreQ, matchID)
	if err != nil && !IsNoRows(err) {
		return nil, err
	}
	if err == nil {
		parsed, parseErr := match_entities.ParseScore(scoreRow.ScoreJSON)
		if parseErr != nil {
			return nil, parseErr
		}
		score = &parsed
	}

	return &history_out.RawMatchRow{
		Match:          &match,
		Participants:   participants,
		Score:          score,
		CreatedByAlias: creatorAlias,
	}, nil
}

// ProfileVisibilityRepository implements history_out.ProfileVisibilityReader.
type ProfileVisibilityRepository struct {
	DB *sqlx.DB
}

func NewProfileVisibilityRepository(db *sqlx.DB) *ProfileVisibilityRepository {
	return &ProfileVisibilityRepository{DB: db}
}

func (r *ProfileVisibilityRepository) IsPublic(ctx context.Context, userID uuid.UUID) (bool, error) {
	const q = `SELECT is_public FROM user_profiles WHERE user_id=$1`
	var isPublic bool
	err := r.DB.GetContext(ctx, &isPublic, q, userID)
	if IsNoRows(err) {
		return false, nil
	}
	return isPublic, err
}
