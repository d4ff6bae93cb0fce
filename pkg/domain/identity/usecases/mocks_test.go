package identity_usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
)

type mockTransactor struct{}

func (m *mockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserWriter struct{ mock.Mock }

func (m *mockUserWriter) Create(ctx context.Context, user *identity_entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserWriter) Update(ctx context.Context, user *identity_entities.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockUserReader struct{ mock.Mock }

func (m *mockUserReader) FindByID(ctx context.Context, id uuid.UUID) (*identity_entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.User), args.Error(1)
}

type mockIdentityWriter struct{ mock.Mock }

func (m *mockIdentityWriter) Create(ctx context.Context, i *identity_entities.AuthIdentity) error {
	return m.Called(ctx, i).Error(0)
}

func (m *mockIdentityWriter) Update(ctx context.Context, i *identity_entities.AuthIdentity) error {
	return m.Called(ctx, i).Error(0)
}

type mockIdentityReader struct{ mock.Mock }

func (m *mockIdentityReader) FindVerifiedByKindValue(ctx context.Context, kind identity_entities.ContactKind, value string) (*identity_entities.AuthIdentity, error) {
	args := m.Called(ctx, kind, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthIdentity), args.Error(1)
}

func (m *mockIdentityReader) FindByUserAndKind(ctx context.Context, userID uuid.UUID, kind identity_entities.ContactKind) (*identity_entities.AuthIdentity, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthIdentity), args.Error(1)
}

type mockCredentialWriter struct{ mock.Mock }

func (m *mockCredentialWriter) Upsert(ctx context.Context, c *identity_entities.AuthCredential) error {
	return m.Called(ctx, c).Error(0)
}

type mockCredentialReader struct{ mock.Mock }

func (m *mockCredentialReader) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity_entities.AuthCredential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthCredential), args.Error(1)
}

type mockOtpWriter struct{ mock.Mock }

func (m *mockOtpWriter) Create(ctx context.Context, o *identity_entities.AuthOtp) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOtpWriter) Update(ctx context.Context, o *identity_entities.AuthOtp) error {
	return m.Called(ctx, o).Error(0)
}

type mockOtpReader struct{ mock.Mock }

func (m *mockOtpReader) FindLatest(ctx context.Context, kind identity_entities.ContactKind, value string, purpose identity_entities.OtpPurpose) (*identity_entities.AuthOtp, error) {
	args := m.Called(ctx, kind, value, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthOtp), args.Error(1)
}

func (m *mockOtpReader) FindLatestForUpdate(ctx context.Context, kind identity_entities.ContactKind, value string, purpose identity_entities.OtpPurpose) (*identity_entities.AuthOtp, error) {
	args := m.Called(ctx, kind, value, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthOtp), args.Error(1)
}

type mockSessionWriter struct{ mock.Mock }

func (m *mockSessionWriter) Create(ctx context.Context, s *identity_entities.AuthSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessionWriter) Update(ctx context.Context, s *identity_entities.AuthSession) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSessionWriter) RevokeAllForUser(ctx context.Context, userID uuid.UUID, reason identity_entities.RevokedReason, now time.Time) error {
	return m.Called(ctx, userID, reason, now).Error(0)
}

type mockSessionReader struct{ mock.Mock }

func (m *mockSessionReader) FindByID(ctx context.Context, id uuid.UUID) (*identity_entities.AuthSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthSession), args.Error(1)
}

func (m *mockSessionReader) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*identity_entities.AuthSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity_entities.AuthSession), args.Error(1)
}

type mockLoginAttemptWriter struct{ mock.Mock }

func (m *mockLoginAttemptWriter) Create(ctx context.Context, a *identity_entities.AuthLoginAttempt) error {
	return m.Called(ctx, a).Error(0)
}

type mockLoginAttemptReader struct{ mock.Mock }

func (m *mockLoginAttemptReader) CountFailuresSince(ctx context.Context, loginKeyHash string, since time.Time) (int, error) {
	args := m.Called(ctx, loginKeyHash, since)
	return args.Int(0), args.Error(1)
}

type mockPasswordHasher struct{ mock.Mock }

func (m *mockPasswordHasher) HashPassword(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) ComparePassword(ctx context.Context, hashedPassword, password string) error {
	return m.Called(ctx, hashedPassword, password).Error(0)
}

type mockProfileProvisioner struct{ mock.Mock }

func (m *mockProfileProvisioner) EnsureProfile(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockSessionIssuer struct {
	mock.Mock
	issuedAccess  string
	issuedRefresh string
}

func (m *mockSessionIssuer) IssueSession(ctx context.Context, userID uuid.UUID) (string, string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSessionIssuer) RotateSession(ctx context.Context, userID uuid.UUID) (*identity_entities.AuthSession, string, string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*identity_entities.AuthSession), args.String(1), args.String(2), args.Error(3)
}

func (m *mockSessionIssuer) HashRefreshToken(token string) string {
	return m.Called(token).String(0)
}

func (m *mockSessionIssuer) ParseRefreshToken(token string) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Get(1).(uuid.UUID), args.Error(2)
}
