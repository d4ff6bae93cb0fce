package profile_usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_services "github.com/rivio-api/rivio-api/pkg/domain/profile/services"
	profile_usecases "github.com/rivio-api/rivio-api/pkg/domain/profile/usecases"
)

func TestEnsureProfile_CreatesWhenMissing(t *testing.T) {
	reader := new(mockProfileReader)
	writer := new(mockProfileWriter)
	userID := uuid.New()

	reader.On("FindByUserID", mock.Anything, userID).Return(nil, nil)
	reader.On("FindByAlias", mock.Anything, mock.Anything).Return(nil, nil)
	writer.On("Create", mock.Anything, mock.AnythingOfType("*profile_entities.UserProfile")).Return(nil)

	aliases := profile_services.NewAliasGenerator(reader)
	uc := profile_usecases.NewEnsureProfileUseCase(writer, reader, aliases)

	err := uc.EnsureProfile(context.Background(), userID)

	assert.NoError(t, err)
	writer.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*profile_entities.UserProfile"))
}

func TestEnsureProfile_IdempotentWhenExists(t *testing.T) {
	reader := new(mockProfileReader)
	writer := new(mockProfileWriter)
	userID := uuid.New()

	reader.On("FindByUserID", mock.Anything, userID).Return(&profile_entities.UserProfile{UserID: userID}, nil)

	aliases := profile_services.NewAliasGenerator(reader)
	uc := profile_usecases.NewEnsureProfileUseCase(writer, reader, aliases)

	err := uc.EnsureProfile(context.Background(), userID)

	assert.NoError(t, err)
	writer.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
