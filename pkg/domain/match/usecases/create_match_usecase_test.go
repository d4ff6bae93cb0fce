package match_usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_in "github.com/rivio-api/rivio-api/pkg/domain/match/ports/in"
	match_usecases "github.com/rivio-api/rivio-api/pkg/domain/match/usecases"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type createMatchFixture struct {
	matches      *mockMatchWriter
	matchReader  *mockMatchReader
	clubs        *mockClubReader
	profiles     *mockProfileReader
	ladderStates *mockLadderStateReader
	categories   *mockCategoryReader
	identities   *mockIdentityVerifier
	audit        *mockAuditRecorder
	uc           *match_usecases.CreateMatchUseCase
}

func newCreateMatchFixture() *createMatchFixture {
	f := &createMatchFixture{
		matches:      new(mockMatchWriter),
		matchReader:  new(mockMatchReader),
		clubs:        new(mockClubReader),
		profiles:     new(mockProfileReader),
		ladderStates: new(mockLadderStateReader),
		categories:   new(mockCategoryReader),
		identities:   new(mockIdentityVerifier),
		audit:        new(mockAuditRecorder),
	}
	f.audit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.uc = match_usecases.NewCreateMatchUseCase(&mockTransactor{}, f.matches, f.matchReader, f.clubs, f.profiles, f.ladderStates, f.categories, f.identities, f.audit, 48)
	return f
}

func fourMenCommand(creator, p2, p3, p4 uuid.UUID) match_in.CreateMatchCommand {
	return match_in.CreateMatchCommand{
		CreatedBy:     creator,
		ParticipantA1: creator,
		ParticipantA2: p2,
		ParticipantB1: p3,
		ParticipantB2: p4,
		PlayedAt:      time.Now().UTC(),
		ScoreSets: []match_entities.ScoreSet{
			{T1: 6, T2: 3},
			{T1: 6, T2: 4},
		},
	}
}

func TestCreateMatch_RejectsInvalidScore(t *testing.T) {
	f := newCreateMatchFixture()
	cmd := fourMenCommand(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	cmd.ScoreSets = []match_entities.ScoreSet{{T1: 6, T2: 6}}

	_, err := f.uc.Handle(context.Background(), cmd)

	assert.Error(t, err)
	assert.True(t, common.IsInvalidInputError(err))
}

func TestCreateMatch_RejectsCreatorNotParticipant(t *testing.T) {
	f := newCreateMatchFixture()
	cmd := fourMenCommand(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	cmd.CreatedBy = uuid.New()

	_, err := f.uc.Handle(context.Background(), cmd)

	assert.Error(t, err)
}

func TestCreateMatch_RejectsTooManyOpenMatches(t *testing.T) {
	f := newCreateMatchFixture()
	creator := uuid.New()
	cmd := fourMenCommand(creator, uuid.New(), uuid.New(), uuid.New())

	f.matchReader.On("CountOpenByCreator", mock.Anything, creator).Return(2, nil)

	_, err := f.uc.Handle(context.Background(), cmd)

	assert.Error(t, err)
	assert.True(t, common.IsForbiddenError(err))
}

func TestCreateMatch_HappyPath(t *testing.T) {
	f := newCreateMatchFixture()
	creator, p2, p3, p4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	cmd := fourMenCommand(creator, p2, p3, p4)

	f.matchReader.On("CountOpenByCreator", mock.Anything, creator).Return(0, nil)
	f.matchReader.On("CountBlockingByCreatorSince", mock.Anything, creator, mock.Anything).Return(0, nil)

	categoryID := uuid.New()
	for _, id := range []uuid.UUID{creator, p2, p3, p4} {
		f.profiles.On("FindByUserID", mock.Anything, id).Return(&profile_entities.UserProfile{
			UserID: id, Alias: "player_" + id.String()[:4], Gender: profile_entities.GenderMale,
		}, nil)
		f.identities.On("HasVerifiedIdentity", mock.Anything, id).Return(true, nil)
		f.ladderStates.On("FindByUserAndLadder", mock.Anything, id, profile_entities.LadderHM).Return(&profile_entities.UserLadderState{
			UserID: id, LadderCode: profile_entities.LadderHM, CategoryID: categoryID,
		}, nil)
	}
	f.categories.On("FindByID", mock.Anything, categoryID).Return(&profile_entities.Category{ID: categoryID, SortOrder: 3}, nil)
	f.categories.On("ListByLadder", mock.Anything, profile_entities.LadderHM).Return([]*profile_entities.Category{
		{ID: categoryID, SortOrder: 3},
	}, nil)
	f.matches.On("Create", mock.Anything, mock.AnythingOfType("*match_entities.Match"), mock.Anything, mock.Anything, mock.Anything).Return(nil)

	match, err := f.uc.Handle(context.Background(), cmd)

	assert.NoError(t, err)
	assert.Equal(t, profile_entities.LadderHM, match.LadderCode)
	assert.Equal(t, match_entities.MatchStatusPendingConfirm, match.Status)
	f.matches.AssertCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
