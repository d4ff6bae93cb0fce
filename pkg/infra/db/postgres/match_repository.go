package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
)

const matchColumns = `id, ladder_code, category_id, club_id, played_at, created_by, status, confirmation_deadline,
	confirmed_count, has_dispute, rank_processed_at, anti_farming_weight, proposed_score_json,
	proposed_winner_team_no, proposed_by, proposed_at, proposal_count, created_at, updated_at`

// MatchRepository implements match_out.MatchWriter/MatchReader. Match,
// MatchParticipant, MatchScore, and MatchConfirmation are written together
// because creates all four rows atomically.
type MatchRepository struct {
	DB *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{DB: db}
}

func (r *MatchRepository) Create(ctx context.Context, match *match_entities.Match, participants []*match_entities.MatchParticipant, score *match_entities.MatchScore, confirmations []*match_entities.MatchConfirmation) error {
	q := Q(ctx, r.DB)

	const insertMatch = `INSERT INTO matches (` + matchColumns + `)
		VALUES (:id, :ladder_code, :category_id, :club_id, :played_at, :created_by, :status, :confirmation_deadline,
			:confirmed_count, :has_dispute, :rank_processed_at, :anti_farming_weight, :proposed_score_json,
			:proposed_winner_team_no, :proposed_by, :proposed_at, :proposal_count, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, q, insertMatch, match); err != nil {
		return err
	}

	const insertParticipant = `INSERT INTO match_participants (match_id, user_id, team_no) VALUES (:match_id, :user_id, :team_no)`
	for _, p := range participants {
		if _, err := sqlx.NamedExecContext(ctx, q, insertParticipant, p); err != nil {
			return err
		}
	}

	const insertScore = `INSERT INTO match_scores (match_id, score_json, winner_team_no) VALUES (:match_id, :score_json, :winner_team_no)`
	if _, err := sqlx.NamedExecContext(ctx, q, insertScore, score); err != nil {
		return err
	}

	const insertConfirmation = `INSERT INTO match_confirmations (match_id, user_id, status, decided_at, note, source)
		VALUES (:match_id, :user_id, :status, :decided_at, :note, :source)`
	for _, c := range confirmations {
		if _, err := sqlx.NamedExecContext(ctx, q, insertConfirmation, c); err != nil {
			return err
		}
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, match *match_entities.Match) error {
	const q = `UPDATE matches SET status=:status, confirmed_count=:confirmed_count, has_dispute=:has_dispute,
		rank_processed_at=:rank_processed_at, proposed_score_json=:proposed_score_json,
		proposed_winner_team_no=:proposed_winner_team_no, proposed_by=:proposed_by, proposed_at=:proposed_at,
		proposal_count=:proposal_count, updated_at=:updated_at
		WHERE id=:id`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, match)
	return err
}

func (r *MatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*match_entities.Match, error) {
	const q = `SELECT ` + matchColumns + ` FROM matches WHERE id=$1`
	var row match_entities.Match
	err := r.DB.GetContext(ctx, &row, q, id)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *MatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*match_entities.Match, error) {
	const q = `SELECT ` + matchColumns + ` FROM matches WHERE id=$1 FOR UPDATE`
	var row match_entities.Match
	err := Q(ctx, r.DB).GetContext(ctx, &row, q, id)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *MatchRepository) CountOpenByCreator(ctx context.Context, userID uuid.UUID) (int, error) {
	const q = `SELECT COUNT(*) FROM matches WHERE created_by=$1 AND status=$2`
	var count int
	err := r.DB.GetContext(ctx, &count, q, userID, match_entities.MatchStatusPendingConfirm)
	return count, err
}

func (r *MatchRepository) CountBlockingByCreatorSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM matches
		WHERE created_by=$1 AND created_at >= $2
		AND (status=$3 OR (status=$4 AND confirmation_deadline < now()))`
	var count int
	err := r.DB.GetContext(ctx, &count, q, userID, since, match_entities.MatchStatusExpired, match_entities.MatchStatusPendingConfirm)
	return count, err
}

// MatchParticipantRepository implements match_out.MatchParticipantReader.
type MatchParticipantRepository struct {
	DB *sqlx.DB
}

func NewMatchParticipantRepository(db *sqlx.DB) *MatchParticipantRepository {
	return &MatchParticipantRepository{DB: db}
}

func (r *MatchParticipantRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchParticipant, error) {
	const q = `SELECT match_id, user_id, team_no FROM match_participants WHERE match_id=$1 ORDER BY team_no`
	var rows []*match_entities.MatchParticipant
	err := r.DB.SelectContext(ctx, &rows, q, matchID)
	return rows, err
}

// MatchScoreRepository implements match_out.MatchScoreWriter/Reader.
type MatchScoreRepository struct {
	DB *sqlx.DB
}

func NewMatchScoreRepository(db *sqlx.DB) *MatchScoreRepository {
	return &MatchScoreRepository{DB: db}
}

func (r *MatchScoreRepository) Replace(ctx context.Context, score *match_entities.MatchScore) error {
	const q = `UPDATE match_scores SET score_json=:score_json, winner_team_no=:winner_team_no WHERE match_id=:match_id`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, score)
	return err
}

func (r *MatchScoreRepository) FindByMatch(ctx context.Context, matchID uuid.UUID) (*match_entities.MatchScore, error) {
	const q = `SELECT match_id, score_json, winner_team_no FROM match_scores WHERE match_id=$1`
	var row match_entities.MatchScore
	err := r.DB.GetContext(ctx, &row, q, matchID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// MatchConfirmationRepository implements match_out.MatchConfirmationWriter/Reader.
type MatchConfirmationRepository struct {
	DB *sqlx.DB
}

func NewMatchConfirmationRepository(db *sqlx.DB) *MatchConfirmationRepository {
	return &MatchConfirmationRepository{DB: db}
}

func (r *MatchConfirmationRepository) Upsert(ctx context.Context, confirmation *match_entities.MatchConfirmation) error {
	const q = `INSERT INTO match_confirmations (match_id, user_id, status, decided_at, note, source)
		VALUES (:match_id, :user_id, :status, :decided_at, :note, :source)
		ON CONFLICT (match_id, user_id) DO UPDATE SET status=EXCLUDED.status, decided_at=EXCLUDED.decided_at,
			note=EXCLUDED.note, source=EXCLUDED.source`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, confirmation)
	return err
}

func (r *MatchConfirmationRepository) ResetAllToPending(ctx context.Context, matchID uuid.UUID) error {
	const q = `UPDATE match_confirmations SET status=$2, decided_at=NULL WHERE match_id=$1`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, matchID, match_entities.ConfirmationPending)
	return err
}

func (r *MatchConfirmationRepository) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*match_entities.MatchConfirmation, error) {
	const q = `SELECT match_id, user_id, status, decided_at, note, source FROM match_confirmations WHERE match_id=$1`
	var rows []*match_entities.MatchConfirmation
	err := Q(ctx, r.DB).SelectContext(ctx, &rows, q, matchID)
	return rows, err
}

// MatchDisputeRepository implements match_out.MatchDisputeWriter.
type MatchDisputeRepository struct {
	DB *sqlx.DB
}

func NewMatchDisputeRepository(db *sqlx.DB) *MatchDisputeRepository {
	return &MatchDisputeRepository{DB: db}
}

func (r *MatchDisputeRepository) Create(ctx context.Context, dispute *match_entities.MatchDispute) error {
	const q = `INSERT INTO match_disputes (id, match_id, user_id, reason, status, created_at)
		VALUES (:id, :match_id, :user_id, :reason, :status, :created_at)`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, dispute)
	return err
}

// ClubRepository implements match_out.ClubReader. Clubs are outside this
// module's aggregate boundary — this table only ever needs an
// existence+active check.
type ClubRepository struct {
	DB *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{DB: db}
}

func (r *ClubRepository) IsActiveClub(ctx context.Context, clubID uuid.UUID) (bool, error) {
	const q = `SELECT is_active FROM clubs WHERE id=$1`
	var isActive bool
	err := r.DB.GetContext(ctx, &isActive, q, clubID)
	if IsNoRows(err) {
		return false, nil
	}
	return isActive, err
}
