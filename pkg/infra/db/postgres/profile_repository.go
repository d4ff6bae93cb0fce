package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// UserProfileRepository implements profile_out.UserProfileWriter/Reader.
type UserProfileRepository struct {
	DB *sqlx.DB
}

func NewUserProfileRepository(db *sqlx.DB) *UserProfileRepository {
	return &UserProfileRepository{DB: db}
}

const profileColumns = `user_id, alias, gender, is_public, country, city, handedness, preferred_side,
	avatar_mode, avatar_preset_key, avatar_url, created_at, updated_at`

func (r *UserProfileRepository) Create(ctx context.Context, profile *profile_entities.UserProfile) error {
	const q = `INSERT INTO user_profiles (` + profileColumns + `)
		VALUES (:user_id, :alias, :gender, :is_public, :country, :city, :handedness, :preferred_side,
			:avatar_mode, :avatar_preset_key, :avatar_url, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, profile)
	return TranslateWriteError(err, common.ResourceTypeUserProfile, "alias", profile.Alias)
}

func (r *UserProfileRepository) Update(ctx context.Context, profile *profile_entities.UserProfile) error {
	const q = `UPDATE user_profiles SET alias=:alias, gender=:gender, is_public=:is_public, country=:country,
		city=:city, handedness=:handedness, preferred_side=:preferred_side, avatar_mode=:avatar_mode,
		avatar_preset_key=:avatar_preset_key, avatar_url=:avatar_url, updated_at=:updated_at
		WHERE user_id=:user_id`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, profile)
	return TranslateWriteError(err, common.ResourceTypeUserProfile, "alias", profile.Alias)
}

func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile_entities.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id=$1`
	var row profile_entities.UserProfile
	err := r.DB.GetContext(ctx, &row, q, userID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserProfileRepository) FindByAlias(ctx context.Context, alias string) (*profile_entities.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles WHERE lower(alias)=lower($1)`
	var row profile_entities.UserProfile
	err := r.DB.GetContext(ctx, &row, q, alias)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserProfileRepository) SearchByAliasPrefix(ctx context.Context, query string, limit int) ([]*profile_entities.UserProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM user_profiles
		WHERE is_public=true AND lower(alias) LIKE lower($1) || '%' ORDER BY alias LIMIT $2`
	var rows []*profile_entities.UserProfile
	err := r.DB.SelectContext(ctx, &rows, q, strings.TrimSpace(query), limit)
	return rows, err
}

// CategoryRepository implements profile_out.CategoryReader.
type CategoryRepository struct {
	DB *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

const categoryColumns = `id, ladder_code, code, name, sort_order`

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile_entities.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id=$1`
	var row profile_entities.Category
	err := r.DB.GetContext(ctx, &row, q, id)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepository) FindByLadderAndCode(ctx context.Context, ladder profile_entities.Ladder, code string) (*profile_entities.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE ladder_code=$1 AND code=$2`
	var row profile_entities.Category
	err := r.DB.GetContext(ctx, &row, q, ladder, code)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepository) ListByLadder(ctx context.Context, ladder profile_entities.Ladder) ([]*profile_entities.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE ladder_code=$1 ORDER BY sort_order ASC`
	var rows []*profile_entities.Category
	err := r.DB.SelectContext(ctx, &rows, q, ladder)
	return rows, err
}

// MxCategoryMapRepository implements profile_out.MxCategoryMapReader.
type MxCategoryMapRepository struct {
	DB *sqlx.DB
}

func NewMxCategoryMapRepository(db *sqlx.DB) *MxCategoryMapRepository {
	return &MxCategoryMapRepository{DB: db}
}

func (r *MxCategoryMapRepository) FindMapping(ctx context.Context, gender profile_entities.Gender, primaryCode string) (*profile_entities.MxCategoryMap, error) {
	const q = `SELECT gender, primary_code, mx_code, mx_score FROM mx_category_map WHERE gender=$1 AND primary_code=$2`
	var row profile_entities.MxCategoryMap
	err := r.DB.GetContext(ctx, &row, q, gender, primaryCode)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UserLadderStateRepository implements profile_out.UserLadderStateWriter/Reader.
type UserLadderStateRepository struct {
	DB *sqlx.DB
}

func NewUserLadderStateRepository(db *sqlx.DB) *UserLadderStateRepository {
	return &UserLadderStateRepository{DB: db}
}

const ladderStateColumns = `user_id, ladder_code, category_id, rating, verified_matches, is_provisional, trust_score, created_at, updated_at`

func (r *UserLadderStateRepository) Create(ctx context.Context, state *profile_entities.UserLadderState) error {
	const q = `INSERT INTO user_ladder_states (` + ladderStateColumns + `)
		VALUES (:user_id, :ladder_code, :category_id, :rating, :verified_matches, :is_provisional, :trust_score, :created_at, :updated_at)`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, state)
	return TranslateWriteError(err, common.ResourceTypeUserLadderState, "user_id,ladder_code", state.UserID)
}

func (r *UserLadderStateRepository) Update(ctx context.Context, state *profile_entities.UserLadderState) error {
	const q = `UPDATE user_ladder_states SET category_id=:category_id, rating=:rating, verified_matches=:verified_matches,
		is_provisional=:is_provisional, trust_score=:trust_score, updated_at=:updated_at
		WHERE user_id=:user_id AND ladder_code=:ladder_code`
	_, err := sqlx.NamedExecContext(ctx, Q(ctx, r.DB), q, state)
	return err
}

func (r *UserLadderStateRepository) FindByUserAndLadder(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*profile_entities.UserLadderState, error) {
	const q = `SELECT ` + ladderStateColumns + ` FROM user_ladder_states WHERE user_id=$1 AND ladder_code=$2`
	var row profile_entities.UserLadderState
	err := r.DB.GetContext(ctx, &row, q, userID, ladder)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserLadderStateRepository) FindByUserAndLadderForUpdate(ctx context.Context, userID uuid.UUID, ladder profile_entities.Ladder) (*profile_entities.UserLadderState, error) {
	const q = `SELECT ` + ladderStateColumns + ` FROM user_ladder_states WHERE user_id=$1 AND ladder_code=$2 FOR UPDATE`
	var row profile_entities.UserLadderState
	err := Q(ctx, r.DB).GetContext(ctx, &row, q, userID, ladder)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserLadderStateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*profile_entities.UserLadderState, error) {
	const q = `SELECT ` + ladderStateColumns + ` FROM user_ladder_states WHERE user_id=$1 ORDER BY ladder_code`
	var rows []*profile_entities.UserLadderState
	err := r.DB.SelectContext(ctx, &rows, q, userID)
	return rows, err
}
