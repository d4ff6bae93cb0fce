package history_services

import (
	"time"

	"github.com/google/uuid"

	history_entities "github.com/rivio-api/rivio-api/pkg/domain/history/entities"
	history_out "github.com/rivio-api/rivio-api/pkg/domain/history/ports/out"
	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
)

// BuildRow derives a viewer-scoped TimelineRow from a raw joined match row:
// effective status via lazy expiration, ranking_impact, rival aliases, and
// alias/gender masking for non-self viewers looking at non-public
// participants.
func BuildRow(raw *history_out.RawMatchRow, viewer uuid.UUID, now time.Time) history_entities.TimelineRow {
	m := raw.Match

	effectiveStatus := m.Status
	reason := history_entities.StatusReasonNone
	if m.IsExpired(now) {
		effectiveStatus = match_entities.MatchStatusExpired
		reason = history_entities.StatusReasonLazyExpired
	} else if m.Status == match_entities.MatchStatusPendingConfirm {
		reason = history_entities.StatusReasonAwaitingTeams
	}

	rankingImpact := m.Status == match_entities.MatchStatusVerified && m.IsRankProcessed()

	var focusTeam match_entities.TeamNo
	var createdByAlias string
	var rivalAliases []string
	for _, p := range raw.Participants {
		if p.UserID == viewer {
			focusTeam = p.TeamNo
		}
		if p.UserID == m.CreatedBy {
			createdByAlias = maskAlias(p, viewer)
		}
	}
	for _, p := range raw.Participants {
		if p.TeamNo != focusTeam && p.UserID != viewer {
			rivalAliases = append(rivalAliases, maskAlias(p, viewer))
		}
	}

	var winner *match_entities.TeamNo
	var isWin *bool
	if raw.Score != nil {
		w := match_entities.TeamNo(raw.Score.DerivedWinner())
		winner = &w
		win := w == focusTeam
		isWin = &win
	}

	return history_entities.TimelineRow{
		MatchID:         m.ID,
		LadderCode:      m.LadderCode,
		CategoryID:      m.CategoryID,
		PlayedAt:        m.PlayedAt,
		EffectiveStatus: effectiveStatus,
		StatusReason:    reason,
		RankingImpact:   rankingImpact,
		FocusTeamNo:     focusTeam,
		WinnerTeamNo:    winner,
		IsWin:           isWin,
		RivalAliases:    rivalAliases,
		CreatedByUserID: m.CreatedBy,
		CreatedByAlias:  createdByAlias,
	}
}

// BuildDetail adds the per-participant breakdown to BuildRow's output
//).
func BuildDetail(raw *history_out.RawMatchRow, viewer uuid.UUID, now time.Time) history_entities.MatchDetail {
	row := BuildRow(raw, viewer, now)

	participants := make([]history_entities.ParticipantDetail, 0, len(raw.Participants))
	for _, p := range raw.Participants {
		detail := history_entities.ParticipantDetail{
			UserID:             p.UserID,
			Alias:              maskAlias(p, viewer),
			TeamNo:             p.TeamNo,
			ConfirmationStatus: p.ConfirmationStatus,
		}
		if p.UserID == viewer || p.IsPublic {
			gender := p.Gender
			detail.Gender = &gender
		}
		participants = append(participants, detail)
	}

	var score *match_entities.Score
	if raw.Score != nil {
		s := *raw.Score
		score = &s
	}

	return history_entities.MatchDetail{Row: row, Participants: participants, Score: score}
}

// maskAlias hides a non-public, non-self participant's alias behind the
// "[private]" sentinel.
func maskAlias(p history_out.RawParticipant, viewer uuid.UUID) string {
	if p.UserID == viewer || p.IsPublic {
		return p.Alias
	}
	return history_entities.MaskedAlias
}
