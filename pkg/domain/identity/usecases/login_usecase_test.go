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

func TestLogin_Success(t *testing.T) {
	identities := new(mockIdentityReader)
	users := new(mockUserReader)
	usersW := new(mockUserWriter)
	credentials := new(mockCredentialReader)
	attempts := new(mockLoginAttemptWriter)
	attemptsR := new(mockLoginAttemptReader)
	hasher := new(mockPasswordHasher)
	issuer := new(mockSessionIssuer)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")

	userID := uuid.New()
	identity := identity_entities.NewAuthIdentity(userID, identity_entities.ContactKindEmail, "jane@example.com")
	identity.MarkVerified(time.Now())
	credential := identity_entities.NewAuthCredential(userID, "bcrypt-hash")
	user := &identity_entities.User{Status: identity_entities.UserStatusActive}
	user.ID = userID

	loginKeyHash := pepper.HashLoginKey(identity_entities.ContactKindEmail, "jane@example.com")

	attemptsR.On("CountFailuresSince", mock.Anything, loginKeyHash, mock.Anything).Return(0, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com").Return(identity, nil)
	credentials.On("FindByUserID", mock.Anything, userID).Return(credential, nil)
	hasher.On("ComparePassword", mock.Anything, "bcrypt-hash", "correct-password").Return(nil)
	users.On("FindByID", mock.Anything, userID).Return(user, nil)
	attempts.On("Create", mock.Anything, mock.AnythingOfType("*identity_entities.AuthLoginAttempt")).Return(nil)
	usersW.On("Update", mock.Anything, mock.AnythingOfType("*identity_entities.User")).Return(nil)
	issuer.On("IssueSession", mock.Anything, userID).Return("access-token", "refresh-token", nil)

	uc := identity_usecases.NewLoginUseCase(identities, users, usersW, credentials, attempts, attemptsR, hasher, issuer, pepper, 15, 8)

	tokens, err := uc.Handle(context.Background(), identity_in.LoginCommand{Identifier: "jane@example.com", Password: "correct-password"})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", tokens.AccessToken)
	assert.Equal(t, "refresh-token", tokens.RefreshToken)
}

func TestLogin_WrongPassword_RecordsFailureAttempt(t *testing.T) {
	identities := new(mockIdentityReader)
	users := new(mockUserReader)
	usersW := new(mockUserWriter)
	credentials := new(mockCredentialReader)
	attempts := new(mockLoginAttemptWriter)
	attemptsR := new(mockLoginAttemptReader)
	hasher := new(mockPasswordHasher)
	issuer := new(mockSessionIssuer)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")

	userID := uuid.New()
	identity := identity_entities.NewAuthIdentity(userID, identity_entities.ContactKindEmail, "jane@example.com")
	credential := identity_entities.NewAuthCredential(userID, "bcrypt-hash")

	attemptsR.On("CountFailuresSince", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
	identities.On("FindVerifiedByKindValue", mock.Anything, identity_entities.ContactKindEmail, "jane@example.com").Return(identity, nil)
	credentials.On("FindByUserID", mock.Anything, userID).Return(credential, nil)
	hasher.On("ComparePassword", mock.Anything, "bcrypt-hash", "wrong-password").Return(assert.AnError)
	attempts.On("Create", mock.Anything, mock.AnythingOfType("*identity_entities.AuthLoginAttempt")).Return(nil)

	uc := identity_usecases.NewLoginUseCase(identities, users, usersW, credentials, attempts, attemptsR, hasher, issuer, pepper, 15, 8)

	_, err := uc.Handle(context.Background(), identity_in.LoginCommand{Identifier: "jane@example.com", Password: "wrong-password"})

	assert.True(t, common.IsUnauthorizedError(err))
	attempts.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(a *identity_entities.AuthLoginAttempt) bool {
		return a.Success == false
	}))
}

func TestLogin_AttemptWindowExceeded(t *testing.T) {
	identities := new(mockIdentityReader)
	users := new(mockUserReader)
	usersW := new(mockUserWriter)
	credentials := new(mockCredentialReader)
	attempts := new(mockLoginAttemptWriter)
	attemptsR := new(mockLoginAttemptReader)
	hasher := new(mockPasswordHasher)
	issuer := new(mockSessionIssuer)
	pepper := identity_services.NewPepperHasher("otp-pepper", "login-pepper")

	attemptsR.On("CountFailuresSince", mock.Anything, mock.Anything, mock.Anything).Return(8, nil)

	uc := identity_usecases.NewLoginUseCase(identities, users, usersW, credentials, attempts, attemptsR, hasher, issuer, pepper, 15, 8)

	_, err := uc.Handle(context.Background(), identity_in.LoginCommand{Identifier: "jane@example.com", Password: "whatever"})

	assert.True(t, common.IsRateLimitedError(err))
	identities.AssertNotCalled(t, "FindVerifiedByKindValue", mock.Anything, mock.Anything, mock.Anything)
}
