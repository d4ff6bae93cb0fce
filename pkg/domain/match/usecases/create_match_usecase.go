package match_usecases

import (
	"time"

	"context"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_in "github.com/rivio-api/rivio-api/pkg/domain/match/ports/in"
	match_out "github.com/rivio-api/rivio-api/pkg/domain/match/ports/out"
	match_services "github.com/rivio-api/rivio-api/pkg/domain/match/services"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
)

const (
	maxOpenMatchesPerCreator = 2
	blockingLookbackDays     = 30
)

// CreateMatchUseCase backs POST /matches.
type CreateMatchUseCase struct {
	Tx             common.Transactor
	Matches        match_out.MatchWriter
	MatchReader    match_out.MatchReader
	Clubs          match_out.ClubReader
	Profiles       profile_out.UserProfileReader
	LadderStates   profile_out.UserLadderStateReader
	Categories     profile_out.CategoryReader
	Identities     match_out.IdentityVerifier
	Audit          match_out.AuditRecorder
	ConfirmWindowH int
}

func NewCreateMatchUseCase(
	tx common.Transactor,
	matches match_out.MatchWriter,
	matchReader match_out.MatchReader,
	clubs match_out.ClubReader,
	profiles profile_out.UserProfileReader,
	ladderStates profile_out.UserLadderStateReader,
	categories profile_out.CategoryReader,
	identities match_out.IdentityVerifier,
	audit match_out.AuditRecorder,
	confirmWindowHours int,
) *CreateMatchUseCase {
	return &CreateMatchUseCase{
		Tx: tx, Matches: matches, MatchReader: matchReader, Clubs: clubs,
		Profiles: profiles, LadderStates: ladderStates, Categories: categories,
		Identities: identities, Audit: audit, ConfirmWindowH: confirmWindowHours,
	}
}

func (u *CreateMatchUseCase) Handle(ctx context.Context, cmd match_in.CreateMatchCommand) (*match_entities.Match, error) {
	score := match_entities.Score{Sets: cmd.ScoreSets}
	if err := match_services.ValidateScore(score); err != nil {
		return nil, err
	}

	participants := [4]uuid.UUID{cmd.ParticipantA1, cmd.ParticipantA2, cmd.ParticipantB1, cmd.ParticipantB2}
	if err := requireDistinct(participants); err != nil {
		return nil, err
	}
	if err := requireCreatorParticipates(cmd.CreatedBy, participants); err != nil {
		return nil, err
	}

	openCount, err := u.MatchReader.CountOpenByCreator(ctx, cmd.CreatedBy)
	if err != nil {
		return nil, err
	}
	if openCount >= maxOpenMatchesPerCreator {
		return nil, common.NewErrForbidden("too many open matches awaiting confirmation")
	}

	blockingCount, err := u.MatchReader.CountBlockingByCreatorSince(ctx, cmd.CreatedBy, time.Now().UTC().AddDate(0, 0, -blockingLookbackDays))
	if err != nil {
		return nil, err
	}
	if blockingCount > 0 {
		return nil, common.NewErrForbidden("recent expired or unconfirmed matches block new match creation")
	}

	if cmd.ClubID != nil {
		active, err := u.Clubs.IsActiveClub(ctx, *cmd.ClubID)
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, common.NewErrInvalidInput("club is not active")
		}
	}

	genders := [4]profile_entities.Gender{}
	sortOrders := [4]int{}
	for i, userID := range participants {
		profile, err := u.Profiles.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil || profile.Alias == "" || !profile.Gender.IsPlayable() {
			return nil, common.NewErrInvalidInput("all participants must have a complete profile")
		}
		verified, err := u.Identities.HasVerifiedIdentity(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !verified {
			return nil, common.NewErrInvalidInput("all participants must have a verified identity")
		}
		genders[i] = profile.Gender
	}

	ladder, ok := match_services.DeriveLadder(genders)
	if !ok {
		return nil, common.NewErrInvalidInput("participants' gender mix does not map to a ladder")
	}

	for i, userID := range participants {
		state, err := u.LadderStates.FindByUserAndLadder(ctx, userID, ladder)
		if err != nil {
			return nil, err
		}
		if state == nil {
			return nil, common.NewErrInvalidInput("all participants must have a ladder state for " + string(ladder))
		}
		category, err := u.Categories.FindByID(ctx, state.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, common.NewErrInvalidInput("participant category not found")
		}
		sortOrders[i] = category.SortOrder
	}

	ladderCategories, err := u.Categories.ListByLadder(ctx, ladder)
	if err != nil {
		return nil, err
	}
	category := match_services.DeriveCategory(sortOrders, ladderCategories)
	if category == nil {
		return nil, common.NewErrUnavailable("no categories configured for ladder " + string(ladder))
	}

	match := match_entities.NewMatch(ladder, category.ID, cmd.CreatedBy, cmd.PlayedAt, u.ConfirmWindowH)

	winnerTeamNo := match_entities.TeamNo(score.DerivedWinner())
	scoreJSON, err := score.MarshalToJSON()
	if err != nil {
		return nil, err
	}
	matchScore := &match_entities.MatchScore{MatchID: match.ID, ScoreJSON: scoreJSON, WinnerTeamNo: winnerTeamNo}

	matchParticipants := make([]*match_entities.MatchParticipant, 4)
	confirmations := make([]*match_entities.MatchConfirmation, 4)
	now := time.Now().UTC()
	for i, userID := range participants {
		team := match_entities.Team1
		if i >= 2 {
			team = match_entities.Team2
		}
		matchParticipants[i] = &match_entities.MatchParticipant{MatchID: match.ID, UserID: userID, TeamNo: team}

		confirmation := &match_entities.MatchConfirmation{MatchID: match.ID, UserID: userID, Status: match_entities.ConfirmationPending}
		if userID == cmd.CreatedBy {
			confirmation.Status = match_entities.ConfirmationConfirmed
			confirmation.Source = match_entities.ConfirmationSourceCreator
			confirmation.DecidedAt = &now
		}
		confirmations[i] = confirmation
	}

	err = u.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.Matches.Create(ctx, match, matchParticipants, matchScore, confirmations); err != nil {
			return err
		}
		actor := cmd.CreatedBy
		return u.Audit.Record(ctx, &actor, "match", match.ID.String(), "match/created", map[string]interface{}{
			"ladder":   string(ladder),
			"category": category.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

func requireDistinct(participants [4]uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, 4)
	for _, id := range participants {
		if seen[id] {
			return common.NewErrInvalidInput("participants must be 4 distinct users")
		}
		seen[id] = true
	}
	return nil
}

func requireCreatorParticipates(creator uuid.UUID, participants [4]uuid.UUID) error {
	for _, id := range participants {
		if id == creator {
			return nil
		}
	}
	return common.NewErrInvalidInput("creator must be one of the 4 participants")
}
