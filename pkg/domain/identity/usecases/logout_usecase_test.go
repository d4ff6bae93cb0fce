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
	identity_usecases "github.com/rivio-api/rivio-api/pkg/domain/identity/usecases"
)

func TestLogout_RevokesMatchingSession(t *testing.T) {
	sessions := new(mockSessionReader)
	sessionW := new(mockSessionWriter)
	issuer := new(mockSessionIssuer)

	userID := uuid.New()
	sessionID := uuid.New()
	session := identity_entities.NewAuthSession(userID, "hash", 30*24*time.Hour)
	session.ID = sessionID

	issuer.On("ParseRefreshToken", "token").Return(sessionID, userID, nil)
	sessions.On("FindByID", mock.Anything, sessionID).Return(session, nil)
	sessionW.On("Update", mock.Anything, mock.MatchedBy(func(s *identity_entities.AuthSession) bool {
		return s.RevokedAt != nil && *s.RevokedReason == identity_entities.RevokedReasonLogout
	})).Return(nil)

	uc := identity_usecases.NewLogoutUseCase(sessions, sessionW, issuer)

	err := uc.Handle(context.Background(), identity_in.LogoutCommand{RefreshToken: "token"})

	assert.NoError(t, err)
	sessionW.AssertExpectations(t)
}

func TestLogout_UnknownTokenIsIdempotentSuccess(t *testing.T) {
	sessions := new(mockSessionReader)
	sessionW := new(mockSessionWriter)
	issuer := new(mockSessionIssuer)

	issuer.On("ParseRefreshToken", "garbage").Return(uuid.Nil, uuid.Nil, common.NewErrUnauthorized("invalid refresh token"))

	uc := identity_usecases.NewLogoutUseCase(sessions, sessionW, issuer)

	err := uc.Handle(context.Background(), identity_in.LogoutCommand{RefreshToken: "garbage"})

	assert.NoError(t, err)
	sessionW.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
