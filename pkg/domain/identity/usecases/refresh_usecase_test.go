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

func TestRefresh_RotatesSession(t *testing.T) {
	sessions := new(mockSessionReader)
	sessionW := new(mockSessionWriter)
	issuer := new(mockSessionIssuer)
	tx := &mockTransactor{}

	userID := uuid.New()
	sessionID := uuid.New()
	replacementID := uuid.New()

	session := identity_entities.NewAuthSession(userID, "old-hash", 30*24*time.Hour)
	session.ID = sessionID
	replacement := identity_entities.NewAuthSession(userID, "new-hash", 30*24*time.Hour)
	replacement.ID = replacementID

	issuer.On("ParseRefreshToken", "old-token").Return(sessionID, userID, nil)
	sessions.On("FindByIDForUpdate", mock.Anything, sessionID).Return(session, nil)
	issuer.On("HashRefreshToken", "old-token").Return("old-hash")
	issuer.On("RotateSession", mock.Anything, userID).Return(replacement, "new-access", "new-refresh", nil)
	sessionW.On("Update", mock.Anything, mock.MatchedBy(func(s *identity_entities.AuthSession) bool {
		return s.ID == sessionID && s.ReplacedBy != nil && *s.ReplacedBy == replacementID
	})).Return(nil)

	uc := identity_usecases.NewRefreshUseCase(tx, sessions, sessionW, issuer)

	tokens, err := uc.Handle(context.Background(), identity_in.RefreshCommand{RefreshToken: "old-token"})

	assert.NoError(t, err)
	assert.Equal(t, "new-access", tokens.AccessToken)
	assert.Equal(t, "new-refresh", tokens.RefreshToken)
	sessionW.AssertExpectations(t)
}

func TestRefresh_RevokedSessionFails(t *testing.T) {
	sessions := new(mockSessionReader)
	sessionW := new(mockSessionWriter)
	issuer := new(mockSessionIssuer)
	tx := &mockTransactor{}

	userID := uuid.New()
	sessionID := uuid.New()

	session := identity_entities.NewAuthSession(userID, "old-hash", 30*24*time.Hour)
	session.ID = sessionID
	session.Revoke(identity_entities.RevokedReasonRotated, time.Now().UTC())

	issuer.On("ParseRefreshToken", "old-token").Return(sessionID, userID, nil)
	sessions.On("FindByIDForUpdate", mock.Anything, sessionID).Return(session, nil)
	issuer.On("HashRefreshToken", "old-token").Return("old-hash")

	uc := identity_usecases.NewRefreshUseCase(tx, sessions, sessionW, issuer)

	_, err := uc.Handle(context.Background(), identity_in.RefreshCommand{RefreshToken: "old-token"})

	assert.True(t, common.IsUnauthorizedError(err))
	sessionW.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
