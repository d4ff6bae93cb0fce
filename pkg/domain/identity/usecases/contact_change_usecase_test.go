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

func TestContactChangeConfirm_UpdatesUserAndIdentity(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	identityW := new(mockIdentityWriter)
	users := new(mockUserReader)
	usersW := new(mockUserWriter)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	userID := uuid.New()
	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindPhone, "+573000000000", identity_entities.OtpPurposeContactChange, pepper.HashOtpCode("654321"), 10*time.Minute)
	user := &identity_entities.User{}
	user.ID = userID
	currentIdentity := identity_entities.NewAuthIdentity(userID, identity_entities.ContactKindPhone, "+573000000001")

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindPhone, "+573000000000", identity_entities.OtpPurposeContactChange).Return(otp, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindPhone, "+573000000000").
		Return(nil, common.NewErrNotFound(common.ResourceTypeAuthIdentity, "value", "+573000000000"))
	otpsWriter.On("Update", mock.Anything, mock.AnythingOfType("*identity_entities.AuthOtp")).Return(nil)
	users.On("FindByID", mock.Anything, userID).Return(user, nil)
	usersW.On("Update", mock.Anything, mock.MatchedBy(func(u *identity_entities.User) bool {
		return u.Phone == "+573000000000"
	})).Return(nil)
	identities.On("FindByUserAndKind", mock.Anything, userID, identity_entities.ContactKindPhone).Return(currentIdentity, nil)
	identityW.On("Update", mock.Anything, mock.MatchedBy(func(i *identity_entities.AuthIdentity) bool {
		return i.Value == "+573000000000" && i.IsVerified
	})).Return(nil)

	uc := identity_usecases.NewContactChangeConfirmUseCase(tx, otps, otpsWriter, identities, identityW, users, usersW, pepper)

	err := uc.Handle(context.Background(), identity_in.ContactChangeConfirmCommand{
		UserID: userID, NewKind: identity_entities.ContactKindPhone, NewValue: "+57 300 000 0000", Code: "654321",
	})

	assert.NoError(t, err)
	identityW.AssertExpectations(t)
}

func TestContactChangeConfirm_RejectsContactOwnedByAnotherUser(t *testing.T) {
	otps := new(mockOtpReader)
	otpsWriter := new(mockOtpWriter)
	identities := new(mockIdentityReader)
	identityW := new(mockIdentityWriter)
	users := new(mockUserReader)
	usersW := new(mockUserWriter)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")
	tx := &mockTransactor{}

	userID := uuid.New()
	otherUserID := uuid.New()
	otp := identity_entities.NewAuthOtp(identity_entities.ContactKindEmail, "taken@example.com", identity_entities.OtpPurposeContactChange, pepper.HashOtpCode("111111"), 10*time.Minute)
	ownedByOther := identity_entities.NewAuthIdentity(otherUserID, identity_entities.ContactKindEmail, "taken@example.com")
	ownedByOther.MarkVerified(time.Now())

	otps.On("FindLatestForUpdate", mock.Anything, identity_entities.ContactKindEmail, "taken@example.com", identity_entities.OtpPurposeContactChange).Return(otp, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindEmail, "taken@example.com").Return(ownedByOther, nil)

	uc := identity_usecases.NewContactChangeConfirmUseCase(tx, otps, otpsWriter, identities, identityW, users, usersW, pepper)

	err := uc.Handle(context.Background(), identity_in.ContactChangeConfirmCommand{
		UserID: userID, NewKind: identity_entities.ContactKindEmail, NewValue: "taken@example.com", Code: "111111",
	})

	assert.True(t, common.IsConflictError(err))
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
