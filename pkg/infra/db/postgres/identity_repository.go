package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
)

// userRow flattens common.BaseEntity's resource_owner (db:"-") into real
// columns, since a users row in this single-tenant deployment only ever
// carries a user_id owner — tenant/client/group stay zero-value.
type userRow struct {
	ID          uuid.UUID  `db:"id"`
	Phone       string     `db:"phone"`
	Email       string     `db:"email"`
	Status      string     `db:"status"`
	LastLoginAt *time.Time `db:"last_login_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r userRow) toEntity() *identity_entities.User {
	return &identity_entities.User{
		BaseEntity: common.BaseEntity{
			ID:              r.ID,
			VisibilityLevel: common.UserAudienceIDKey,
			VisibilityType:  common.PrivateVisibilityTypeKey,
			ResourceOwner:   common.ResourceOwner{UserID: r.ID},
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		},
		Phone:       r.Phone,
		Email:       r.Email,
		Status:      identity_entities.UserStatus(r.Status),
		LastLoginAt: r.LastLoginAt,
	}
}

// UserRepository implements identity_out.UserWriter and UserReader.
type UserRepository struct {
	DB *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *identity_entities.User) error {
	const q = `INSERT INTO users (id, phone, email, status, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, user.ID, user.Phone, user.Email, user.Status, user.LastLoginAt, user.CreatedAt, user.UpdatedAt)
	return TranslateWriteError(err, common.ResourceTypeUser, "id", user.ID)
}

func (r *UserRepository) Update(ctx context.Context, user *identity_entities.User) error {
	const q = `UPDATE users SET phone=$2, email=$3, status=$4, last_login_at=$5, updated_at=$6 WHERE id=$1`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, user.ID, user.Phone, user.Email, user.Status, user.LastLoginAt, user.UpdatedAt)
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity_entities.User, error) {
	const q = `SELECT id, phone, email, status, last_login_at, created_at, updated_at FROM users WHERE id=$1`
	var row userRow
	err := Q(ctx, r.DB).GetContext(ctx, &row, q, id)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// AuthIdentityRepository implements identity_out.AuthIdentityWriter/Reader.
type AuthIdentityRepository struct {
	DB *sqlx.DB
}

func NewAuthIdentityRepository(db *sqlx.DB) *AuthIdentityRepository {
	return &AuthIdentityRepository{DB: db}
}

func (r *AuthIdentityRepository) Create(ctx context.Context, identity *identity_entities.AuthIdentity) error {
	const q = `INSERT INTO auth_identities (id, user_id, kind, value, is_verified, verified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, identity.ID, identity.UserID, identity.Kind, identity.Value,
		identity.IsVerified, identity.VerifiedAt, identity.CreatedAt, identity.UpdatedAt)
	return TranslateWriteError(err, common.ResourceTypeAuthIdentity, "value", identity.Value)
}

func (r *AuthIdentityRepository) Update(ctx context.Context, identity *identity_entities.AuthIdentity) error {
	const q = `UPDATE auth_identities SET is_verified=$2, verified_at=$3, updated_at=$4 WHERE id=$1`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, identity.ID, identity.IsVerified, identity.VerifiedAt, identity.UpdatedAt)
	return err
}

func (r *AuthIdentityRepository) FindVerifiedByKindValue(ctx context.Context, kind identity_entities.ContactKind, value string) (*identity_entities.AuthIdentity, error) {
	const q = `SELECT id, user_id, kind, value, is_verified, verified_at, created_at, updated_at
		FROM auth_identities WHERE kind=$1 AND value=$2 AND is_verified=true`
	var row identity_entities.AuthIdentity
	err := r.DB.GetContext(ctx, &row, q, kind, value)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AuthIdentityRepository) FindByUserAndKind(ctx context.Context, userID uuid.UUID, kind identity_entities.ContactKind) (*identity_entities.AuthIdentity, error) {
	const q = `SELECT id, user_id, kind, value, is_verified, verified_at, created_at, updated_at
		FROM auth_identities WHERE user_id=$1 AND kind=$2`
	var row identity_entities.AuthIdentity
	err := r.DB.GetContext(ctx, &row, q, userID, kind)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AuthCredentialRepository implements identity_out.AuthCredentialWriter/Reader.
type AuthCredentialRepository struct {
	DB *sqlx.DB
}

func NewAuthCredentialRepository(db *sqlx.DB) *AuthCredentialRepository {
	return &AuthCredentialRepository{DB: db}
}

func (r *AuthCredentialRepository) Upsert(ctx context.Context, credential *identity_entities.AuthCredential) error {
	const q = `INSERT INTO auth_credentials (user_id, password_hash, password_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET password_hash=EXCLUDED.password_hash, password_updated_at=EXCLUDED.password_updated_at`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, credential.UserID, credential.PasswordHash, credential.PasswordUpdatedAt)
	return err
}

func (r *AuthCredentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity_entities.AuthCredential, error) {
	const q = `SELECT user_id, password_hash, password_updated_at FROM auth_credentials WHERE user_id=$1`
	var row identity_entities.AuthCredential
	err := r.DB.GetContext(ctx, &row, q, userID)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AuthOtpRepository implements identity_out.AuthOtpWriter/Reader.
type AuthOtpRepository struct {
	DB *sqlx.DB
}

func NewAuthOtpRepository(db *sqlx.DB) *AuthOtpRepository {
	return &AuthOtpRepository{DB: db}
}

func (r *AuthOtpRepository) Create(ctx context.Context, otp *identity_entities.AuthOtp) error {
	const q = `INSERT INTO auth_otps (id, contact_kind, contact_value, purpose, code_hash, attempts, expires_at, consumed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, otp.ID, otp.ContactKind, otp.ContactValue, otp.Purpose, otp.CodeHash,
		otp.Attempts, otp.ExpiresAt, otp.ConsumedAt, otp.CreatedAt)
	return err
}

func (r *AuthOtpRepository) Update(ctx context.Context, otp *identity_entities.AuthOtp) error {
	const q = `UPDATE auth_otps SET attempts=$2, consumed_at=$3 WHERE id=$1`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, otp.ID, otp.Attempts, otp.ConsumedAt)
	return err
}

const selectAuthOtp = `SELECT id, contact_kind, contact_value, purpose, code_hash, attempts, expires_at, consumed_at, created_at
	FROM auth_otps WHERE contact_kind=$1 AND contact_value=$2 AND purpose=$3 ORDER BY created_at DESC LIMIT 1`

func (r *AuthOtpRepository) FindLatest(ctx context.Context, kind identity_entities.ContactKind, value string, purpose identity_entities.OtpPurpose) (*identity_entities.AuthOtp, error) {
	var row identity_entities.AuthOtp
	err := r.DB.GetContext(ctx, &row, selectAuthOtp, kind, value, purpose)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AuthOtpRepository) FindLatestForUpdate(ctx context.Context, kind identity_entities.ContactKind, value string, purpose identity_entities.OtpPurpose) (*identity_entities.AuthOtp, error) {
	const q = selectAuthOtp + ` FOR UPDATE`
	var row identity_entities.AuthOtp
	err := Q(ctx, r.DB).GetContext(ctx, &row, q, kind, value, purpose)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AuthSessionRepository implements identity_out.AuthSessionWriter/Reader.
type AuthSessionRepository struct {
	DB *sqlx.DB
}

func NewAuthSessionRepository(db *sqlx.DB) *AuthSessionRepository {
	return &AuthSessionRepository{DB: db}
}

func (r *AuthSessionRepository) Create(ctx context.Context, session *identity_entities.AuthSession) error {
	const q = `INSERT INTO auth_sessions (id, user_id, refresh_hash, expires_at, revoked_at, revoked_reason, replaced_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, session.ID, session.UserID, session.RefreshHash, session.ExpiresAt,
		session.RevokedAt, session.RevokedReason, session.ReplacedBy, session.CreatedAt)
	return err
}

func (r *AuthSessionRepository) Update(ctx context.Context, session *identity_entities.AuthSession) error {
	const q = `UPDATE auth_sessions SET revoked_at=$2, revoked_reason=$3, replaced_by=$4 WHERE id=$1`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, session.ID, session.RevokedAt, session.RevokedReason, session.ReplacedBy)
	return err
}

func (r *AuthSessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID, reason identity_entities.RevokedReason, now time.Time) error {
	const q = `UPDATE auth_sessions SET revoked_at=$3, revoked_reason=$4 WHERE user_id=$1 AND revoked_at IS NULL AND expires_at > $2`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, userID, now, now, reason)
	return err
}

func (r *AuthSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity_entities.AuthSession, error) {
	const q = `SELECT id, user_id, refresh_hash, expires_at, revoked_at, revoked_reason, replaced_by, created_at
		FROM auth_sessions WHERE id=$1`
	var row identity_entities.AuthSession
	err := r.DB.GetContext(ctx, &row, q, id)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AuthSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*identity_entities.AuthSession, error) {
	const q = `SELECT id, user_id, refresh_hash, expires_at, revoked_at, revoked_reason, replaced_by, created_at
		FROM auth_sessions WHERE id=$1 FOR UPDATE`
	var row identity_entities.AuthSession
	err := Q(ctx, r.DB).GetContext(ctx, &row, q, id)
	if IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AuthLoginAttemptRepository implements identity_out.AuthLoginAttemptWriter/Reader.
type AuthLoginAttemptRepository struct {
	DB *sqlx.DB
}

func NewAuthLoginAttemptRepository(db *sqlx.DB) *AuthLoginAttemptRepository {
	return &AuthLoginAttemptRepository{DB: db}
}

func (r *AuthLoginAttemptRepository) Create(ctx context.Context, attempt *identity_entities.AuthLoginAttempt) error {
	const q = `INSERT INTO auth_login_attempts (id, login_key_hash, success, created_at) VALUES ($1, $2, $3, $4)`
	_, err := Q(ctx, r.DB).ExecContext(ctx, q, attempt.ID, attempt.LoginKeyHash, attempt.Success, attempt.CreatedAt)
	return err
}

func (r *AuthLoginAttemptRepository) CountFailuresSince(ctx context.Context, loginKeyHash string, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM auth_login_attempts WHERE login_key_hash=$1 AND success=false AND created_at >= $2`
	var count int
	err := r.DB.GetContext(ctx, &count, q, loginKeyHash, since)
	return count, err
}
