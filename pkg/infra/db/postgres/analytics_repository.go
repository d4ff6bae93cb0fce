package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	analytics_entities "github.com/rivio-api/rivio-api/pkg/domain/analytics/entities"
	analytics_out "github.com/rivio-api/rivio-api/pkg/domain/analytics/ports/out"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// MatchContextRepository implements analytics_out.MatchContextReader. It
// joins the matches/match_participants tables owned by the match domain and
// the rating_events/user_ladder_states tables owned by the elo/profile
// domains — a read-side cross-domain join, the mirror image of
// match_out.AuditRecorder's cross-domain write.
type MatchContextRepository struct {
	DB *sqlx.DB
}

func NewMatchContextRepository(db *sqlx.DB) *MatchContextRepository {
	return &MatchContextRepository{DB: db}
}

type participantRow struct {
	UserID uuid.UUID         `db:"user_id"`
	TeamNo match_entities.TeamNo `db:"team_no"`
}

func (r *MatchContextRepository) loadContext(ctx context.Context, q querier, matchID uuid.UUID) (*analytics_out.VerifiedMatchContext, error) {
	const matchQ = `SELECT m.ladder_code, m.played_at, s.score_json, s.winner_team_no
		FROM matches m JOIN match_scores s ON s.match_id = m.id WHERE m.id=$1`
	var row struct {
		LadderCode   profile_entities.Ladder `db:"ladder_code"`
		PlayedAt     time.Time               `db:"played_at"`
		ScoreJSON    []byte                  `db:"score_json"`
		WinnerTeamNo match_entities.TeamNo   `db:"winner_team_no"`
	}
	if err := q.GetContext(ctx, &row, matchQ, matchID); err != nil {
		return nil, NotFoundOrErr(err)
	}

	score, err := match_entities.ParseScore(row.ScoreJSON)
	if err != nil {
		return nil, err
	}

	const participantsQ = `SELECT user_id, team_no FROM match_participants WHERE match_id=$1 ORDER BY team_no, user_id`
	var rows []participantRow
	if err := q.SelectContext(ctx, &rows, participantsQ, matchID); err != nil {
		return nil, err
	}

	participants := make([]analytics_out.ParticipantResult, 0, len(rows))
	for _, p := range rows {
		participants = append(participants, analytics_out.ParticipantResult{
			UserID: p.UserID,
			TeamNo: int(p.TeamNo),
			IsWin:  p.TeamNo == row.WinnerTeamNo,
		})
	}

	return &analytics_out.VerifiedMatchContext{
		MatchID:      matchID,
		LadderCode:   row.LadderCode,
		PlayedAt:     row.PlayedAt,
		IsCloseMatch: len(score.Sets) >= 3,
		Participants: participants,
	}, nil
}

func (r *MatchContextRepository) LoadVerifiedMatch(ctx context.Context, matchID uuid.UUID) (*analytics_out.VerifiedMatchContext, error) {
	return r.loadContext(ctx, Q(ctx, r.DB), matchID)
}

func (r *MatchContextRepository) LoadRatingMap(ctx context.Context, matchID uuid.UUID, ladder profile_entities.Ladder, participantIDs []uuid.UUID) (map[uuid.UUID]analytics_out.RatingMeta, error) {
	q := Q(ctx, r.DB)

	const eventsQ = `SELECT user_id, old_rating, new_rating, delta FROM rating_events WHERE match_id=$1 AND ladder_code=$2`
	var events []struct {
		UserID    uuid.UUID `db:"user_id"`
		OldRating int       `db:"old_rating"`
		NewRating int       `db:"new_rating"`
		Delta     int       `db:"delta"`
	}
	if err := q.SelectContext(ctx, &events, eventsQ, matchID, ladder); err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID]analytics_out.RatingMeta, len(participantIDs))
	for _, e := range events {
		old, new_, delta := e.OldRating, e.NewRating, e.Delta
		result[e.UserID] = analytics_out.RatingMeta{OldRating: &old, NewRating: &new_, Delta: &delta}
	}

	// Participants without a rating_events row (unrated/provisional at match
	// time) fall back to their current ladder-state rating with no delta.
	for _, userID := range participantIDs {
		if _, ok := result[userID]; ok {
			continue
		}
		const stateQ = `SELECT rating FROM user_ladder_states WHERE user_id=$1 AND ladder_code=$2`
		var rating int
		err := q.GetContext(ctx, &rating, stateQ, userID, ladder)
		if IsNoRows(err) {
			result[userID] = analytics_out.RatingMeta{}
			continue
		}
		if err != nil {
			return nil, err
		}
		result[userID] = analytics_out.RatingMeta{NewRating: &rating}
	}

	return result, nil
}

func (r *MatchContextRepository) ListVerifiedMatchesForRebuild(ctx context.Context) ([]*analytics_out.VerifiedMatchContext, error) {
	q := Q(ctx, r.DB)
	const idsQ = `SELECT id FROM matches WHERE status=$1 ORDER BY played_at ASC`
	var ids []uuid.UUID
	if err := q.SelectContext(ctx, &ids, idsQ, match_entities.MatchStatusVerified); err != nil {
		return nil, err
	}

	out := make([]*analytics_out.VerifiedMatchContext, 0, len(ids))
	for _, id := range ids {
		m, err := r.loadContext(ctx, q, id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// UserAnalyticsStateRepository implements analytics_out.UserAnalyticsStateWriter/Reader.
type UserAnalyticsStateRepository struct {
	DB *sqlx.DB
}

func NewUserAnalyticsStateRepository(db *sqlx.DB) *UserAnalyticsStateRepository {
	return &UserAnalyticsStateRepository{DB: db}
}

const analyticsStateColumns = `user_id, ladder_code, total_verified_matches, wins, losses, win_rate,
	current_streak_type, current_streak_len, best_win_streak, best_loss_streak,
	recent_form_bits, recent_form_size, recent_10_matches, recent_10_wins, recent_10_win_rate,
	rolling_bits_50, rolling_size_50, rolling_5_win_rate, rolling_20_win_rate, rolling_50_win_rate,
	matches_7d, matches_30d, matches_90d, close_matches, close_match_rate,
	vs_stronger_matches, vs_stronger_wins, vs_stronger_win_rate,
	vs_similar_matches, vs_similar_wins, vs_similar_win_rate,
	vs_weaker_matches, vs_weaker_wins, vs_weaker_win_rate,
	current_rating, peak_rating, last_match_id, last_match_at, updated_at`

func (r *UserAnalyticsStateRepository) EnsureExists(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) error {
	const q = `INSERT INTO user_analytics_states (user_id, ladder_code, win_rate, updated_at)
		VALUES ($1, $2, 0, now()) ON CONFLICT (user_id, ladder_code) DO NOTHING`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, userID, ladder)
	return err
}

func (r *UserAnalyticsStateRepository) LockForUpdate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*analytics_entities.UserAnalyticsState, error) {
	const q = `SELECT ` + analyticsStateColumns + ` FROM user_analytics_states WHERE user_id=$1 AND ladder_code=$2 FOR UPDATE`
	var row analytics_entities.UserAnalyticsState
	err := Q(ctx, r.DB).GetContext(ctx, &row, q, userID, ladder)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserAnalyticsStateRepository) Update(ctx context.Context, state *analytics_entities.UserAnalyticsState) error {
	const q = `UPDATE user_analytics_states SET
		total_verified_matches=:total_verified_matches, wins=:wins, losses=:losses, win_rate=:win_rate,
		current_streak_type=:current_streak_type, current_streak_len=:current_streak_len,
		best_win_streak=:best_win_streak, best_loss_streak=:best_loss_streak,
		recent_form_bits=:recent_form_bits, recent_form_size=:recent_form_size,
		recent_10_matches=:recent_10_matches, recent_10_wins=:recent_10_wins, recent_10_win_rate=:recent_10_win_rate,
		rolling_bits_50=:rolling_bits_50, rolling_size_50=:rolling_size_50,
		rolling_5_win_rate=:rolling_5_win_rate, rolling_20_win_rate=:rolling_20_win_rate, rolling_50_win_rate=:rolling_50_win_rate,
		matches_7d=:matches_7d, matches_30d=:matches_30d, matches_90d=:matches_90d,
		close_matches=:close_matches, close_match_rate=:close_match_rate,
		vs_stronger_matches=:vs_stronger_matches, vs_stronger_wins=:vs_stronger_wins, vs_stronger_win_rate=:vs_stronger_win_rate,
		vs_similar_matches=:vs_similar_matches, vs_similar_wins=:vs_similar_wins, vs_similar_win_rate=:vs_similar_win_rate,
		vs_weaker_matches=:vs_weaker_matches, vs_weaker_wins=:vs_weaker_wins, vs_weaker_win_rate=:vs_weaker_win_rate,
		current_rating=:current_rating, peak_rating=:peak_rating, last_match_id=:last_match_id, last_match_at=:last_match_at,
		updated_at=:updated_at
		WHERE user_id=:user_id AND ladder_code=:ladder_code`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, state)
	return err
}

func (r *UserAnalyticsStateRepository) DeleteAll(ctx context.Context) error {
	_, err := Q(ctx, r.DB).ExecContext(ctx, `DELETE FROM user_analytics_states`)
	return err
}

func (r *UserAnalyticsStateRepository) FindByUserAndLadder(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*analytics_entities.UserAnalyticsState, error) {
	const q = `SELECT ` + analyticsStateColumns + ` FROM user_analytics_states WHERE user_id=$1 AND ladder_code=$2`
	var row analytics_entities.UserAnalyticsState
	err := r.DB.GetContext(ctx, &row, q, userID, ladder)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UserAnalyticsMatchAppliedRepository implements analytics_out.UserAnalyticsMatchAppliedWriter.
type UserAnalyticsMatchAppliedRepository struct {
	DB *sqlx.DB
}

func NewUserAnalyticsMatchAppliedRepository(db *sqlx.DB) *UserAnalyticsMatchAppliedRepository {
	return &UserAnalyticsMatchAppliedRepository{DB: db}
}

const matchAppliedColumns = `user_id, match_id, ladder_code, is_win, is_close_match,
	teammate_user_id, opponent_a_user_id, opponent_b_user_id, opponent_avg_rating, quality_bucket,
	rating_before, rating_after, rating_delta, played_at,
	rolling_10_win_rate, rolling_20_win_rate, rolling_50_win_rate, streak_type_after, streak_len_after`

func (r *UserAnalyticsMatchAppliedRepository) TryInsert(ctx context.Context, row *analytics_entities.UserAnalyticsMatchApplied, enforceIdempotency bool) (bool, error) {
	conflict := ""
	if enforceIdempotency {
		conflict = `ON CONFLICT (user_id, match_id) DO NOTHING`
	}
	q := `INSERT INTO user_analytics_match_applied (` + matchAppliedColumns + `)
		VALUES (:user_id, :match_id, :ladder_code, :is_win, :is_close_match,
			:teammate_user_id, :opponent_a_user_id, :opponent_b_user_id, :opponent_avg_rating, :quality_bucket,
			:rating_before, :rating_after, :rating_delta, :played_at,
			:rolling_10_win_rate, :rolling_20_win_rate, :rolling_50_win_rate, :streak_type_after, :streak_len_after)
		` + conflict
	res, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, row)
	if err != nil {
		return false, err
	}
	if !enforceIdempotency {
		return true, nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserAnalyticsMatchAppliedRepository) UpdateRollingSnapshot(ctx context.Context, userID, matchID uuid.UUID, rolling10, rolling20, rolling50 float64, streakType analytics_entities.StreakType, streakLen int) error {
	const q = `UPDATE user_analytics_match_applied SET rolling_10_win_rate=$3, rolling_20_win_rate=$4,
		rolling_50_win_rate=$5, streak_type_after=$6, streak_len_after=$7
		WHERE user_id=$1 AND match_id=$2`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, userID, matchID, rolling10, rolling20, rolling50, streakType, streakLen)
	return err
}

func (r *UserAnalyticsMatchAppliedRepository) DeleteAll(ctx context.Context) error {
	_, err := Q(ctx, r.DB).ExecContext(ctx, `DELETE FROM user_analytics_match_applied`)
	return err
}

func (r *UserAnalyticsMatchAppliedRepository) CountRecentWindows(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, playedAt time.Time) (c7, c30, c90 int, err error) {
	const q = `SELECT
		count(*) FILTER (WHERE played_at >= $3 - interval '7 days') AS c7,
		count(*) FILTER (WHERE played_at >= $3 - interval '30 days') AS c30,
		count(*) FILTER (WHERE played_at >= $3 - interval '90 days') AS c90
		FROM user_analytics_match_applied WHERE user_id=$1 AND ladder_code=$2 AND played_at <= $3`
	var row struct {
		C7  int `db:"c7"`
		C30 int `db:"c30"`
		C90 int `db:"c90"`
	}
	if err = Q(ctx, r.DB).GetContext(ctx, &row, q, userID, ladder, playedAt); err != nil {
		return 0, 0, 0, err
	}
	return row.C7, row.C30, row.C90, nil
}

// UserAnalyticsPartnerStatsRepository implements analytics_out.UserAnalyticsPartnerStatsWriter.
type UserAnalyticsPartnerStatsRepository struct {
	DB *sqlx.DB
}

func NewUserAnalyticsPartnerStatsRepository(db *sqlx.DB) *UserAnalyticsPartnerStatsRepository {
	return &UserAnalyticsPartnerStatsRepository{DB: db}
}

func (r *UserAnalyticsPartnerStatsRepository) Upsert(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, partnerUserID uuid.UUID, isWin bool, playedAt time.Time) error {
	win, loss := 0, 0
	if isWin {
		win = 1
	} else {
		loss = 1
	}
	const q = `INSERT INTO user_analytics_partner_stats (user_id, ladder_code, partner_user_id, matches, wins, losses, win_rate, last_played_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $5, 0, $6, now())
		ON CONFLICT (user_id, ladder_code, partner_user_id) DO UPDATE SET
			matches = user_analytics_partner_stats.matches + 1,
			wins = user_analytics_partner_stats.wins + $4,
			losses = user_analytics_partner_stats.losses + $5,
			last_played_at = GREATEST(user_analytics_partner_stats.last_played_at, $6),
			updated_at = now()`
	if _, err := Q(ctx, r.DB).ExecContext(ctx, q, userID, ladder, partnerUserID, win, loss, playedAt); err != nil {
		return err
	}
	return r.recomputeWinRate(ctx, userID, ladder, partnerUserID)
}

func (r *UserAnalyticsPartnerStatsRepository) recomputeWinRate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, partnerUserID uuid.UUID) error {
	const q = `UPDATE user_analytics_partner_stats SET win_rate = CASE WHEN matches = 0 THEN 0 ELSE wins::float8 / matches END
		WHERE user_id=$1 AND ladder_code=$2 AND partner_user_id=$3`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, userID, ladder, partnerUserID)
	return err
}

func (r *UserAnalyticsPartnerStatsRepository) DeleteAll(ctx context.Context) error {
	_, err := Q(ctx, r.DB).ExecContext(ctx, `DELETE FROM user_analytics_partner_stats`)
	return err
}

// UserAnalyticsRivalStatsRepository implements analytics_out.UserAnalyticsRivalStatsWriter.
type UserAnalyticsRivalStatsRepository struct {
	DB *sqlx.DB
}

func NewUserAnalyticsRivalStatsRepository(db *sqlx.DB) *UserAnalyticsRivalStatsRepository {
	return &UserAnalyticsRivalStatsRepository{DB: db}
}

func (r *UserAnalyticsRivalStatsRepository) Upsert(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder, rivalUserID uuid.UUID, isWin bool, playedAt time.Time) error {
	win, loss := 0, 0
	if isWin {
		win = 1
	} else {
		loss = 1
	}
	const q = `INSERT INTO user_analytics_rival_stats (user_id, ladder_code, rival_user_id, matches, wins, losses, win_rate, last_played_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $5, 0, $6, now())
		ON CONFLICT (user_id, ladder_code, rival_user_id) DO UPDATE SET
			matches = user_analytics_rival_stats.matches + 1,
			wins = user_analytics_rival_stats.wins + $4,
			losses = user_analytics_rival_stats.losses + $5,
			last_played_at = GREATEST(user_analytics_rival_stats.last_played_at, $6),
			updated_at = now()`
	if _, err := Q(ctx, r.DB).ExecContext(ctx, q, userID, ladder, rivalUserID, win, loss, playedAt); err != nil {
		return err
	}
	const recompute = `UPDATE user_analytics_rival_stats SET win_rate = CASE WHEN matches = 0 THEN 0 ELSE wins::float8 / matches END
		WHERE user_id=$1 AND ladder_code=$2 AND rival_user_id=$3`
	_, err := Q(ctx, r.DB).ExecContext(ctx, recompute, userID, ladder, rivalUserID)
	return err
}

func (r *UserAnalyticsRivalStatsRepository) DeleteAll(ctx context.Context) error {
	_, err := Q(ctx, r.DB).ExecContext(ctx, `DELETE FROM user_analytics_rival_stats`)
	return err
}

// CurrentRatingRepository implements analytics_out.CurrentRatingReader.
type CurrentRatingRepository struct {
	DB *sqlx.DB
}

func NewCurrentRatingRepository(db *sqlx.DB) *CurrentRatingRepository {
	return &CurrentRatingRepository{DB: db}
}

func (r *CurrentRatingRepository) CurrentRating(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*int, error) {
	const q = `SELECT rating FROM user_ladder_states WHERE user_id=$1 AND ladder_code=$2`
	var rating int
	err := Q(ctx, r.DB).GetContext(ctx, &rating, q, userID, ladder)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
