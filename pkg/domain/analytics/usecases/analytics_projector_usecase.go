package analytics_usecases

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	analytics_entities "github.com/rivio-api/rivio-api/pkg/domain/analytics/entities"
	analytics_out "github.com/rivio-api/rivio-api/pkg/domain/analytics/ports/out"
	analytics_services "github.com/rivio-api/rivio-api/pkg/domain/analytics/services"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// AnalyticsProjectorUseCase implements match_out.AnalyticsProjector.ProjectMatch
// (invoked inline from the match confirmation ratification step, // §4.2.3/§4.4) and the standalone Rebuild recovery path. Both funnel through
// applyParticipantResult, matching original_source services/analytics.py's
// single _apply_participant_result helper shared by apply_verified_match_analytics
// and rebuild_analytics.
type AnalyticsProjectorUseCase struct {
	MatchContexts  analytics_out.MatchContextReader
	States         analytics_out.UserAnalyticsStateWriter
	MatchApplied   analytics_out.UserAnalyticsMatchAppliedWriter
	PartnerStats   analytics_out.UserAnalyticsPartnerStatsWriter
	RivalStats     analytics_out.UserAnalyticsRivalStatsWriter
	CurrentRatings analytics_out.CurrentRatingReader
}

// ProjectMatch implements match_out.AnalyticsProjector. Called
// inline, within the caller's open transaction — it never opens its own.
func (u *AnalyticsProjectorUseCase) ProjectMatch(ctx context.Context, matchID uuid.UUID) error {
	matchCtx, err := u.MatchContexts.LoadVerifiedMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if matchCtx == nil {
		return nil
	}
	return u.applyMatch(ctx, matchCtx, true)
}

// Rebuild wipes every analytics table and replays every verified match in
// play order. Idempotency enforcement is skipped since the tables
// start empty.
func (u *AnalyticsProjectorUseCase) Rebuild(ctx context.Context) error {
	if err := u.RivalStats.DeleteAll(ctx); err != nil {
		return err
	}
	if err := u.PartnerStats.DeleteAll(ctx); err != nil {
		return err
	}
	if err := u.MatchApplied.DeleteAll(ctx); err != nil {
		return err
	}
	if err := u.States.DeleteAll(ctx); err != nil {
		return err
	}

	matches, err := u.MatchContexts.ListVerifiedMatchesForRebuild(ctx)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := u.applyMatch(ctx, m, false); err != nil {
			return err
		}
	}
	return nil
}

func (u *AnalyticsProjectorUseCase) applyMatch(ctx context.Context, matchCtx *analytics_out.VerifiedMatchContext, enforceIdempotency bool) error {
	participantIDs := make([]uuid.UUID, 0, len(matchCtx.Participants))
	byTeam := map[int][]uuid.UUID{}
	for _, p := range matchCtx.Participants {
		participantIDs = append(participantIDs, p.UserID)
		byTeam[p.TeamNo] = append(byTeam[p.TeamNo], p.UserID)
	}

	ratings, err := u.MatchContexts.LoadRatingMap(ctx, matchCtx.MatchID, matchCtx.LadderCode, participantIDs)
	if err != nil {
		return err
	}

	for _, p := range matchCtx.Participants {
		teammates := filterOut(byTeam[p.TeamNo], p.UserID)
		var opponents []uuid.UUID
		for teamNo, ids := range byTeam {
			if teamNo == p.TeamNo {
				continue
			}
			opponents = append(opponents, ids...)
		}

		var opponentOldRatings []int
		for _, oid := range opponents {
			if meta, ok := ratings[oid]; ok && meta.OldRating != nil {
				opponentOldRatings = append(opponentOldRatings, *meta.OldRating)
			}
		}
		opponentAvg := analytics_services.AverageRating(opponentOldRatings)

		selfMeta := ratings[p.UserID]
		quality := analytics_services.QualityBucketFor(selfMeta.OldRating, opponentAvg)

		var teammate *uuid.UUID
		if len(teammates) > 0 {
			teammate = &teammates[0]
		}
		limitedOpponents := opponents
		if len(limitedOpponents) > 2 {
			limitedOpponents = limitedOpponents[:2]
		}

		if err := u.applyParticipantResult(ctx, participantApplication{
			matchID:       matchCtx.MatchID,
			ladderCode:    matchCtx.LadderCode,
			playedAt:      matchCtx.PlayedAt,
			userID:        p.UserID,
			isWin:         p.IsWin,
			isCloseMatch:  matchCtx.IsCloseMatch,
			teammate:      teammate,
			opponents:     limitedOpponents,
			opponentAvg:   opponentAvg,
			quality:       quality,
			ratingBefore:  selfMeta.OldRating,
			ratingAfter:   selfMeta.NewRating,
			ratingDelta:   selfMeta.Delta,
			enforceUnique: enforceIdempotency,
		}); err != nil {
			return err
		}
	}
	return nil
}

type participantApplication struct {
	matchID       uuid.UUID
	ladderCode    profile_entities.Ladder
	playedAt      time.Time
	userID        uuid.UUID
	isWin         bool
	isCloseMatch  bool
	teammate      *uuid.UUID
	opponents     []uuid.UUID
	opponentAvg   *int
	quality       analytics_entities.QualityBucket
	ratingBefore  *int
	ratingAfter   *int
	ratingDelta   *int
	enforceUnique bool
}

func (u *AnalyticsProjectorUseCase) applyParticipantResult(ctx context.Context, p participantApplication) error {
	row := &analytics_entities.UserAnalyticsMatchApplied{
		UserID:            p.userID,
		MatchID:           p.matchID,
		LadderCode:        p.ladderCode,
		IsWin:             p.isWin,
		IsCloseMatch:      p.isCloseMatch,
		TeammateUserID:    p.teammate,
		OpponentAvgRating: p.opponentAvg,
		QualityBucket:     p.quality,
		RatingBefore:      p.ratingBefore,
		RatingAfter:       p.ratingAfter,
		RatingDelta:       p.ratingDelta,
		PlayedAt:          p.playedAt,
	}
	if len(p.opponents) > 0 {
		row.OpponentAUserID = &p.opponents[0]
	}
	if len(p.opponents) > 1 {
		row.OpponentBUserID = &p.opponents[1]
	}

	inserted, err := u.MatchApplied.TryInsert(ctx, row, p.enforceUnique)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	if err := u.States.EnsureExists(ctx, p.userID, p.ladderCode); err != nil {
		return err
	}
	state, err := u.States.LockForUpdate(ctx, p.userID, p.ladderCode)
	if err != nil {
		return err
	}

	applyCounters(state, p)

	c7, c30, c90, err := u.MatchApplied.CountRecentWindows(ctx, p.userID, p.ladderCode, p.playedAt)
	if err != nil {
		return err
	}
	state.Matches7d, state.Matches30d, state.Matches90d = c7, c30, c90

	currentRating := p.ratingAfter
	if currentRating == nil {
		currentRating, err = u.CurrentRatings.CurrentRating(ctx, p.userID, p.ladderCode)
		if err != nil {
			return err
		}
	}
	state.CurrentRating = currentRating
	if currentRating != nil {
		if state.PeakRating == nil || *currentRating > *state.PeakRating {
			state.PeakRating = currentRating
		}
	}
	state.LastMatchID = &p.matchID
	state.LastMatchAt = &p.playedAt
	state.UpdatedAt = time.Now().UTC()

	if err := u.States.Update(ctx, state); err != nil {
		return err
	}

	_, _, recent10WinRate := winRateSnapshot(uint64(state.RecentFormBits), state.RecentFormSize, 10)
	_, _, rolling20WinRate := winRateSnapshot(state.RollingBits50, state.RollingSize50, 20)
	_, _, rolling50WinRate := winRateSnapshot(state.RollingBits50, state.RollingSize50, 50)

	if err := u.MatchApplied.UpdateRollingSnapshot(ctx, p.userID, p.matchID, recent10WinRate, rolling20WinRate, rolling50WinRate, state.CurrentStreakType, state.CurrentStreakLen); err != nil {
		return err
	}

	if p.teammate != nil {
		if err := u.PartnerStats.Upsert(ctx, p.userID, p.ladderCode, *p.teammate, p.isWin, p.playedAt); err != nil {
			return err
		}
	}

	uniqueRivals := dedupeUUIDs(p.opponents)
	for _, rival := range uniqueRivals {
		if err := u.RivalStats.Upsert(ctx, p.userID, p.ladderCode, rival, p.isWin, p.playedAt); err != nil {
			return err
		}
	}

	return nil
}

// applyCounters mutates state in place with the new match's contribution —
// streaks, form bitmasks, close-match/quality-bucket tallies — mirroring
// original_source _apply_participant_result's arithmetic section.
func applyCounters(state *analytics_entities.UserAnalyticsState, p participantApplication) {
	state.TotalVerifiedMatches++
	if p.isWin {
		state.Wins++
	} else {
		state.Losses++
	}
	state.WinRate = analytics_services.Pct(state.Wins, state.TotalVerifiedMatches)

	newType := analytics_entities.StreakLoss
	if p.isWin {
		newType = analytics_entities.StreakWin
	}
	if state.CurrentStreakType == newType && state.CurrentStreakLen > 0 {
		state.CurrentStreakLen++
	} else {
		state.CurrentStreakLen = 1
	}
	state.CurrentStreakType = newType
	if newType == analytics_entities.StreakWin {
		if state.CurrentStreakLen > state.BestWinStreak {
			state.BestWinStreak = state.CurrentStreakLen
		}
	} else if state.CurrentStreakLen > state.BestLossStreak {
		state.BestLossStreak = state.CurrentStreakLen
	}

	newRecentBits, newRecentSize := analytics_services.PushResult(uint64(state.RecentFormBits), state.RecentFormSize, analytics_services.MaxRecentForm, p.isWin)
	state.RecentFormBits, state.RecentFormSize = uint32(newRecentBits), newRecentSize
	state.RollingBits50, state.RollingSize50 = analytics_services.PushResult(state.RollingBits50, state.RollingSize50, analytics_services.MaxRollingForm, p.isWin)

	state.Recent10Matches, state.Recent10Wins, state.Recent10WinRate = winRateSnapshot(uint64(state.RecentFormBits), state.RecentFormSize, 10)
	_, _, state.Rolling5WinRate = winRateSnapshot(state.RollingBits50, state.RollingSize50, 5)
	_, _, state.Rolling20WinRate = winRateSnapshot(state.RollingBits50, state.RollingSize50, 20)
	_, _, state.Rolling50WinRate = winRateSnapshot(state.RollingBits50, state.RollingSize50, 50)

	if p.isCloseMatch {
		state.CloseMatches++
	}
	state.CloseMatchRate = analytics_services.Pct(state.CloseMatches, state.TotalVerifiedMatches)

	switch p.quality {
	case analytics_entities.QualityStronger:
		state.VsStrongerMatches++
		if p.isWin {
			state.VsStrongerWins++
		}
	case analytics_entities.QualityWeaker:
		state.VsWeakerMatches++
		if p.isWin {
			state.VsWeakerWins++
		}
	default:
		state.VsSimilarMatches++
		if p.isWin {
			state.VsSimilarWins++
		}
	}
	state.VsStrongerWinRate = analytics_services.Pct(state.VsStrongerWins, state.VsStrongerMatches)
	state.VsSimilarWinRate = analytics_services.Pct(state.VsSimilarWins, state.VsSimilarMatches)
	state.VsWeakerWinRate = analytics_services.Pct(state.VsWeakerWins, state.VsWeakerMatches)
}

func winRateSnapshot(formBits uint64, size int, n int) (matches, wins int, winRate float64) {
	return analytics_services.WindowWinRate(formBits, size, n)
}

func filterOut(ids []uuid.UUID, exclude uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
