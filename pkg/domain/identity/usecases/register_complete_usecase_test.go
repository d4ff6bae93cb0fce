package identity_usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	identity_entities "github.com/rivio-api/rivio-api/pkg/domain/identity/entities"
	identity_in "github.com/rivio-api/rivio-api/pkg/domain/identity/ports/in"
	identity_services "github.com/rivio-api/rivio-api/pkg/domain/identity/services"
	identity_usecases "github.com/rivio-api/rivio-api/pkg/domain/identity/usecases"
)

func tenantContext() context.Context {
	return context.WithValue(context.Background(), common.TenantIDKey, uuid.New())
}

func TestRegisterComplete_Success(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	identityW := new(mockIdentityWriter)
	users := new(mockUserWriter)
	credentials := new(mockCredentialWriter)
	hasher := new(mockPasswordHasher)
	profiles := new(mockProfileProvisioner)
	issuer := new(mockSessionIssuer)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposeRegister, pepper.HashOtpCode("123456"), 10*time.Minute)

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposeRegister).Return(otp, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com").
		Return(nil, common.NewErrNotFound(common.ResourceTypeAuthIdentity, "value", "jane@example.com"))
	otpsWriter.On("Update", mock.Anything, mock.AnythingOfType("*identity_entities.AuthOtp")).Return(nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*identity_entities.User")).Return(nil)
	identityW.On("Create", mock.Anything, mock.AnythingOfType("*identity_entities.AuthIdentity")).Return(nil)
	hasher.On("HashPassword", mock.Anything, "P@del_1001_Aa1").Return("bcrypt-hash", nil)
	credentials.On("Upsert", mock.Anything, mock.AnythingOfType("*identity_entities.AuthCredential")).Return(nil)
	profiles.On("EnsureProfile", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)
	issuer.On("IssueSession", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return("access-token", "refresh-token", nil)

	uc := identity_usecases.NewRegisterCompleteUseCase(tx, otps, otpsWriter, identities, identityW, users, credentials, hasher, profiles, issuer, pepper)

	tokens, err := uc.Handle(tenantContext(), identity_in.RegisterCompleteCommand{
		Kind: identity_entities.ContactKindEmail, Value: "jane@example.com", Code: "123456", Password: "P@del_1001_Aa1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", tokens.AccessToken)
	assert.NotEqual(t, uuid.Nil, tokens.UserID)
	profiles.AssertExpectations(t)
}

func TestRegisterComplete_AlreadyRegisteredConflict(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	identityW := new(mockIdentityWriter)
	users := new(mockUserWriter)
	credentials := new(mockCredentialWriter)
	hasher := new(mockPasswordHasher)
	profiles := new(mockProfileProvisioner)
	issuer := new(mockSessionIssuer)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposeRegister, pepper.HashOtpCode("123456"), 10*time.Minute)
	existing := identity_entities.NewAuthIdentity(uuid.New(), identity_entities.ContactKindEmail, "jane@example.com")
	existing.MarkVerified(time.Now())

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposeRegister).Return(otp, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com").Return(existing, nil)

	uc := identity_usecases.NewRegisterCompleteUseCase(tx, otps, otpsWriter, identities, identityW, users, credentials, hasher, profiles, issuer, pepper)

	_, err := uc.Handle(tenantContext(), identity_in.RegisterCompleteCommand{
		Kind: identity_entities.ContactKindEmail, Value: "jane@example.com", Code: "123456", Password: "P@del_1001_Aa1",
	})

	assert.True(t, common.IsConflictError(err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterComplete_ExpiredOtp(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	identityW := new(mockIdentityWriter)
	users := new(mockUserWriter)
	credentials := new(mockCredentialWriter)
	hasher := new(mockPasswordHasher)
	profiles := new(mockProfileProvisioner)
	issuer := new(mockSessionIssuer)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposeRegister, pepper.HashOtpCode("123456"), -time.Minute)

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposeRegister).Return(otp, nil)

	uc := identity_usecases.NewRegisterCompleteUseCase(tx, otps, otpsWriter, identities, identityW, users, credentials, hasher, profiles, issuer, pepper)

	_, err := uc.Handle(tenantContext(), identity_in.RegisterCompleteCommand{
		Kind: identity_entities.ContactKindEmail, Value: "jane@example.com", Code: "123456", Password: "P@del_1001_Aa1",
	})

	assert.True(t, common.IsBadRequestError(err))
}
