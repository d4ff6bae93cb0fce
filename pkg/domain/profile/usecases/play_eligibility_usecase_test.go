package profile_usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_usecases "github.com/rivio-api/rivio-api/pkg/domain/profile/usecases"
)

func TestPlayEligibility_MissingEverything(t *testing.T) {
	profiles := new(mockProfileReader)
	ladderStates := new(mockLadderStateReader)
	userID := uuid.New()

	profiles.On("FindByUserID", mock.Anything, userID).Return(nil, nil)

	uc := profile_usecases.NewPlayEligibilityUseCase(profiles, ladderStates)

	result, err := uc.Handle(context.Background(), userID)

	assert.NoError(t, err)
	assert.False(t, result.CanPlay)
	assert.Contains(t, result.Missing, "usuario")
	assert.Contains(t, result.Missing, "género")
	assert.NotEmpty(t, result.Message)
}

func TestPlayEligibility_MissingCategory(t *testing.T) {
	profiles := new(mockProfileReader)
	ladderStates := new(mockLadderStateReader)
	userID := uuid.New()

	profiles.On("FindByUserID", mock.Anything, userID).Return(&profile_entities.UserProfile{
		UserID: userID,
		Alias:  "fulanito",
		Gender: profile_entities.GenderMale,
	}, nil)
	ladderStates.On("ListByUser", mock.Anything, userID).Return([]*profile_entities.UserLadderState{
		{UserID: userID, LadderCode: profile_entities.LadderHM},
	}, nil)

	uc := profile_usecases.NewPlayEligibilityUseCase(profiles, ladderStates)

	result, err := uc.Handle(context.Background(), userID)

	assert.NoError(t, err)
	assert.False(t, result.CanPlay)
	assert.Equal(t, []string{"categoría"}, result.Missing)
}

func TestPlayEligibility_FullyEligible(t *testing.T) {
	profiles := new(mockProfileReader)
	ladderStates := new(mockLadderStateReader)
	userID := uuid.New()

	profiles.On("FindByUserID", mock.Anything, userID).Return(&profile_entities.UserProfile{
		UserID: userID,
		Alias:  "fulanito",
		Gender: profile_entities.GenderMale,
	}, nil)
	ladderStates.On("ListByUser", mock.Anything, userID).Return([]*profile_entities.UserLadderState{
		{UserID: userID, LadderCode: profile_entities.LadderHM},
		{UserID: userID, LadderCode: profile_entities.LadderMX},
	}, nil)

	uc := profile_usecases.NewPlayEligibilityUseCase(profiles, ladderStates)

	result, err := uc.Handle(context.Background(), userID)

	assert.NoError(t, err)
	assert.True(t, result.CanPlay)
	assert.True(t, result.CanCreateMatch)
	assert.True(t, result.CanBeInvited)
	assert.Empty(t, result.Missing)
}
