package match_usecases

import (
	"context"
	"time"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_in "github.com/rivio-api/rivio-api/pkg/domain/match/ports/in"
	match_out "github.com/rivio-api/rivio-api/pkg/domain/match/ports/out"
)

// DisputeMatchUseCase implements the legacy dispute path:
// a participant may set status=disputed, removing the match from ranking
// eligibility.
type DisputeMatchUseCase struct {
	Tx           common.Transactor
	Matches      match_out.MatchWriter
	MatchReader  match_out.MatchReader
	Participants match_out.MatchParticipantReader
	Disputes     match_out.MatchDisputeWriter
	Audit        match_out.AuditRecorder
}

func NewDisputeMatchUseCase(tx common.Transactor, matches match_out.MatchWriter, matchReader match_out.MatchReader, participants match_out.MatchParticipantReader, disputes match_out.MatchDisputeWriter, audit match_out.AuditRecorder) *DisputeMatchUseCase {
	return &DisputeMatchUseCase{Tx: tx, Matches: matches, MatchReader: matchReader, Participants: participants, Disputes: disputes, Audit: audit}
}

func (u *DisputeMatchUseCase) Handle(ctx context.Context, cmd match_in.DisputeMatchCommand) (*match_entities.Match, error) {
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
			return common.NewErrForbidden("only match participants may dispute")
		}
		if match.Status != match_entities.MatchStatusPendingConfirm {
			return common.NewErrBadRequest("not_confirmable")
		}

		now := time.Now().UTC()
		match.MarkDisputed(now)
		if err := u.Matches.Update(ctx, match); err != nil {
			return err
		}

		if err := u.Disputes.Create(ctx, match_entities.NewMatchDispute(match.ID, cmd.Actor, cmd.Reason)); err != nil {
			return err
		}

		if err := u.Audit.Record(ctx, &cmd.Actor, "match", match.ID.String(), "match/disputed", map[string]interface{}{
			"reason": cmd.Reason,
		}); err != nil {
			return err
		}

		result = match
		return nil
	})

	return result, err
}
