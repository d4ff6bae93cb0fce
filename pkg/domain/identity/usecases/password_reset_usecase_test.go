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

func TestPasswordResetConfirm_RevokesAllSessions(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	credentials := new(mockCredentialWriter)
	hasher := new(mockPasswordHasher)
	sessions := new(mockSessionWriter)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	userID := uuid.New()
	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposePasswordReset, pepper.HashOtpCode("123456"), 10*time.Minute)
	identity := identity_entities.NewAuthIdentity(userID, identity_entities.ContactKindEmail, "jane@example.com")
	identity.MarkVerified(time.Now())

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposePasswordReset).Return(otp, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com").Return(identity, nil)
	otpsWriter.On("Update", mock.Anything, mock.AnythingOfType("*identity_entities.AuthOtp")).Return(nil)
	hasher.On("HashPassword", mock.Anything, "NewP@ss1").Return("new-hash", nil)
	credentials.On("Upsert", mock.Anything, mock.MatchedBy(func(c *identity_entities.AuthCredential) bool {
		return c.UserID == userID && c.PasswordHash == "new-hash"
	})).Return(nil)
	sessions.On("RevokeAllForUser", mock.Anything, userID, identity_entities.RevokedReasonPasswordReset, mock.Anything).Return(nil)

	uc := identity_usecases.NewPasswordResetConfirmUseCase(tx, otps, otpsWriter, identities, credentials, hasher, sessions, pepper)

	err := uc.Handle(context.Background(), identity_in.PasswordResetConfirmCommand{
		Kind: identity_entities.ContactKindEmail, Value: "jane@example.com", Code: "123456", NewPassword: "NewP@ss1",
	})

	assert.NoError(t, err)
	sessions.AssertExpectations(t)
}

func TestPasswordResetConfirm_WrongCodeIncrementsAttempts(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	credentials := new(mockCredentialWriter)
	hasher := new(mockPasswordHasher)
	sessions := new(mockSessionWriter)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposePasswordReset, pepper.HashOtpCode("123456"), 10*time.Minute)

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com", identity_entities.OtpPurposePasswordReset).Return(otp, nil)
	otpsWriter.On("Update", mock.Anything, mock.MatchedBy(func(o *identity_entities.AuthOtp) bool {
		return o.Attempts == 1
	})).Return(nil)

	uc := identity_usecases.NewPasswordResetConfirmUseCase(tx, otps, otpsWriter, identities, credentials, hasher, sessions, pepper)

	err := uc.Handle(context.Background(), identity_in.PasswordResetConfirmCommand{
		Kind: identity_entities.ContactKindEmail, Value: "jane@example.com", Code: "000000", NewPassword: "NewP@ss1",
	})

	assert.True(t, common.IsInvalidInputError(err))
	sessions.AssertNotCalled(t, "RevokeAllForUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
