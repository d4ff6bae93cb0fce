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
)

const maxScoreProposals = 2

// ConfirmMatchUseCase implements the confirmation state machine: plain confirm, proposal/appeal, and ratification, all within a
// single transaction per request.
type ConfirmMatchUseCase struct {
	Tx             common.Transactor
	Matches        match_out.MatchWriter
	MatchReader    match_out.MatchReader
	Participants   match_out.MatchParticipantReader
	Scores         match_out.MatchScoreWriter
	ScoreReader    match_out.MatchScoreReader
	Confirmations  match_out.MatchConfirmationWriter
	ConfirmReader  match_out.MatchConfirmationReader
	Ratings        match_out.RatingEngine
	Analytics      match_out.AnalyticsProjector
	Audit          match_out.AuditRecorder
	MaxProposals   int
}

func NewConfirmMatchUseCase(
	tx common.Transactor,
	matches match_out.MatchWriter,
	matchReader match_out.MatchReader,
	participants match_out.MatchParticipantReader,
	scores match_out.MatchScoreWriter,
	scoreReader match_out.MatchScoreReader,
	confirmations match_out.MatchConfirmationWriter,
	confirmReader match_out.MatchConfirmationReader,
	ratings match_out.RatingEngine,
	analytics match_out.AnalyticsProjector,
	audit match_out.AuditRecorder,
	maxProposals int,
) *ConfirmMatchUseCase {
	if maxProposals <= 0 {
		maxProposals = maxScoreProposals
	}
	return &ConfirmMatchUseCase{
		Tx: tx, Matches: matches, MatchReader: matchReader, Participants: participants,
		Scores: scores, ScoreReader: scoreReader, Confirmations: confirmations,
		ConfirmReader: confirmReader, Ratings: ratings, Analytics: analytics, Audit: audit, MaxProposals: maxProposals,
	}
}

func (u *ConfirmMatchUseCase) Handle(ctx context.Context, cmd match_in.ConfirmMatchCommand) (*match_entities.Match, error) {
	var result *match_entities.Match

	err := u.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		match, err := u.MatchReader.FindByIDForUpdate(ctx, cmd.MatchID)
		if err != nil {
			return err
		}
		if match == nil {
			return common.NewErrNotFound(common.ResourceTypeMatch, "id", cmd.MatchID)
		}

		participants, err := u.Participants.ListByMatch(ctx, match.ID)
		if err != nil {
			return err
		}
		if !isParticipant(cmd.Actor, participants) {
			return common.NewErrForbidden("only match participants may confirm")
		}

		now := time.Now().UTC()
		if match.IsExpired(now) {
			match.MarkExpired(now)
			if err := u.Matches.Update(ctx, match); err != nil {
				return err
			}
			return common.NewErrBadRequest("expired")
		}
		if match.Status != match_entities.MatchStatusPendingConfirm {
			return common.NewErrBadRequest("not_confirmable")
		}

		ratifiedScore, err := u.ScoreReader.FindByMatch(ctx, match.ID)
		if err != nil {
			return err
		}

		isProposal := false
		var proposedScore match_entities.Score
		var proposedWinner int
		if cmd.HasScore {
			proposedScore = match_entities.Score{Sets: cmd.ScoreSets}
			if err := match_services.ValidateScore(proposedScore); err != nil {
				return err
			}
			activeJSON := match.ActiveScoreJSON(ratifiedScore.ScoreJSON)
			proposedJSON, err := proposedScore.MarshalToJSON()
			if err != nil {
				return err
			}
			isProposal = string(proposedJSON) != string(activeJSON)
			proposedWinner = proposedScore.DerivedWinner()
		}

		if isProposal {
			if match.ProposalCount >= u.MaxProposals {
				return common.NewErrBadRequest("proposal_limit_reached")
			}
			scoreJSON, err := proposedScore.MarshalToJSON()
			if err != nil {
				return err
			}
			match.ApplyProposal(scoreJSON, proposedWinner, cmd.Actor, now)
			if err := u.Confirmations.ResetAllToPending(ctx, match.ID); err != nil {
				return err
			}
			if err := u.Audit.Record(ctx, &cmd.Actor, "match", match.ID.String(), "match/score_proposed", map[string]interface{}{
				"winner_team": proposedWinner,
			}); err != nil {
				return err
			}
		}

		decidedAt := now
		confirmation := &match_entities.MatchConfirmation{
			MatchID:   match.ID,
			UserID:    cmd.Actor,
			Status:    match_entities.ConfirmationConfirmed,
			DecidedAt: &decidedAt,
			Note:      cmd.Note,
			Source:    cmd.Source,
		}
		if err := u.Confirmations.Upsert(ctx, confirmation); err != nil {
			return err
		}

		confirmations, err := u.ConfirmReader.ListByMatch(ctx, match.ID)
		if err != nil {
			return err
		}
		confirmedCount, teamsConfirmed := tallyConfirmations(confirmations, participants)
		match.ConfirmedCount = confirmedCount

		if teamsConfirmed >= 2 {
			if match.ProposedScoreJSON != nil {
				if err := u.Scores.Replace(ctx, &match_entities.MatchScore{
					MatchID:      match.ID,
					ScoreJSON:    match.ProposedScoreJSON,
					WinnerTeamNo: match_entities.TeamNo(*match.ProposedWinnerTeamNo),
				}); err != nil {
					return err
				}
			}
			match.Ratify(now)
			if err := u.Matches.Update(ctx, match); err != nil {
				return err
			}
			if err := u.Audit.Record(ctx, &cmd.Actor, "match", match.ID.String(), "match/ratified", nil); err != nil {
				return err
			}
			if !match.IsRankProcessed() {
				if err := u.Ratings.ApplyRatings(ctx, match.ID); err != nil {
					return err
				}
				if err := u.Analytics.ProjectMatch(ctx, match.ID); err != nil {
					return err
				}
			}
		} else {
			if err := u.Matches.Update(ctx, match); err != nil {
				return err
			}
		}

		result = match
		return nil
	})

	return result, err
}

func isParticipant(actor uuid.UUID, participants []*match_entities.MatchParticipant) bool {
	for _, p := range participants {
		if p.UserID == actor {
			return true
		}
	}
	return false
}

// tallyConfirmations returns the total confirmed count and the number of
// distinct teams represented among confirmed participants.
func tallyConfirmations(confirmations []*match_entities.MatchConfirmation, participants []*match_entities.MatchParticipant) (int, int) {
	teamByUser := make(map[uuid.UUID]match_entities.TeamNo, len(participants))
	for _, p := range participants {
		teamByUser[p.UserID] = p.TeamNo
	}

	confirmedCount := 0
	teams := make(map[match_entities.TeamNo]bool, 2)
	for _, c := range confirmations {
		if c.Status == match_entities.ConfirmationConfirmed {
			confirmedCount++
			teams[teamByUser[c.UserID]] = true
		}
	}
	return confirmedCount, len(teams)
}
