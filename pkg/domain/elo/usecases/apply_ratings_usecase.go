package elo_usecases

import (
	"time"

	"context"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	elo_entities "github.com/rivio-api/rivio-api/pkg/domain/elo/entities"
	elo_out "github.com/rivio-api/rivio-api/pkg/domain/elo/ports/out"
	elo_services "github.com/rivio-api/rivio-api/pkg/domain/elo/services"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	match_out "github.com/rivio-api/rivio-api/pkg/domain/match/ports/out"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
	profile_out "github.com/rivio-api/rivio-api/pkg/domain/profile/ports/out"
)

// ApplyRatingsUseCase implements match_out.RatingEngine. It
// is invoked inline from confirm_match_usecase's ratification step, inside
// the same transaction — it never opens its own, relying on the ambient
// ctx to carry the already-open tx (see common.Transactor).
type ApplyRatingsUseCase struct {
	Matches        match_out.MatchReader
	MatchWriter    match_out.MatchWriter
	Participants   match_out.MatchParticipantReader
	Scores         match_out.MatchScoreReader
	LadderStates   profile_out.UserLadderStateReader
	LadderStateW   profile_out.UserLadderStateWriter
	RatingEvents   elo_out.RatingEventWriter
	ProvisionalMax int
	ProvisionalCap int
}

func NewApplyRatingsUseCase(
	matches match_out.MatchReader,
	matchWriter match_out.MatchWriter,
	participants match_out.MatchParticipantReader,
	scores match_out.MatchScoreReader,
	ladderStates profile_out.UserLadderStateReader,
	ladderStateW profile_out.UserLadderStateWriter,
	ratingEvents elo_out.RatingEventWriter,
	provisionalMax int,
	provisionalCap int,
) *ApplyRatingsUseCase {
	return &ApplyRatingsUseCase{
		Matches: matches, MatchWriter: matchWriter, Participants: participants, Scores: scores,
		LadderStates: ladderStates, LadderStateW: ladderStateW, RatingEvents: ratingEvents,
		ProvisionalMax: provisionalMax, ProvisionalCap: provisionalCap,
	}
}

type participantState struct {
	userID uuid.UUID
	teamNo match_entities.TeamNo
	state  *profile_entities.UserLadderState
}

func (u *ApplyRatingsUseCase) ApplyRatings(ctx context.Context, matchID uuid.UUID) error {
	match, err := u.Matches.FindByID(ctx, matchID)
	if err != nil {
		return err
	}
	if match == nil {
		return common.NewErrNotFound(common.ResourceTypeMatch, "id", matchID)
	}
	if match.IsRankProcessed() {
		return nil
	}

	participants, err := u.Participants.ListByMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if len(participants) != 4 {
		return common.NewErrUnavailable("match does not have 4 participants")
	}

	score, err := u.Scores.FindByMatch(ctx, matchID)
	if err != nil {
		return err
	}
	parsedScore, err := match_entities.ParseScore(score.ScoreJSON)
	if err != nil {
		return err
	}

	states := make([]*participantState, 0, 4)
	for _, p := range participants {
		state, err := u.LadderStates.FindByUserAndLadderForUpdate(ctx, p.UserID, match.LadderCode)
		if err != nil {
			return err
		}
		if state == nil {
			return common.NewErrUnavailable("participant missing ladder state at rating time")
		}
		states = append(states, &participantState{userID: p.UserID, teamNo: p.TeamNo, state: state})
	}

	team1Rating := averageRating(states, match_entities.Team1)
	team2Rating := averageRating(states, match_entities.Team2)

	features := elo_services.ExtractScoreFeatures(parsedScore)
	weight := elo_services.MovWeightFromFeatures(features)

	var verifiedMatches [4]int
	for i, s := range states {
		verifiedMatches[i] = s.state.VerifiedMatches
	}
	k := elo_services.EffectiveKFactor(verifiedMatches)

	result := elo_services.ComputeElo(team1Rating, team2Rating, int(score.WinnerTeamNo), k, weight)

	now := time.Now().UTC()
	for _, s := range states {
		teamDelta := result.DeltaTeam1
		if s.teamNo == match_entities.Team2 {
			teamDelta = result.DeltaTeam2
		}

		delta := teamDelta
		if s.state.VerifiedMatches < u.ProvisionalMax {
			delta = elo_services.ClampProvisionalDelta(delta, u.ProvisionalCap)
		}

		oldRating := s.state.Rating
		newRating := oldRating + delta
		s.state.Rating = newRating
		s.state.VerifiedMatches++
		s.state.RecalculateProvisional(u.ProvisionalMax)
		s.state.UpdatedAt = now

		if err := u.LadderStateW.Update(ctx, s.state); err != nil {
			return err
		}

		event := elo_entities.NewRatingEvent(matchID, s.userID, match.LadderCode, oldRating, newRating, delta, k, weight)
		if err := u.RatingEvents.Create(ctx, event); err != nil {
			return err
		}
	}

	match.MarkRankProcessed(now)
	return u.MatchWriter.Update(ctx, match)
}

func averageRating(states []*participantState, team match_entities.TeamNo) float64 {
	sum, count := 0, 0
	for _, s := range states {
		if s.teamNo == team {
			sum += s.state.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
