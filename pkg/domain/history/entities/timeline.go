package history_entities

import (
	"time"

	"github.com/google/uuid"

	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// Scope narrows timeline() to the caller-requested match lifecycle bucket.
type Scope string

const (
	ScopeVerified Scope = "verified"
	ScopePending  Scope = "pending"
	ScopeAll      Scope = "all"
)

// MaskedAlias is the sentinel shown in place of a non-public participant's
// alias to a non-self viewer.
const MaskedAlias = "[private]"

// StatusReason explains why a row's effective_status differs from its
// stored status (lazy expiration computed at read time).
type StatusReason string

const (
	StatusReasonNone          StatusReason = ""
	StatusReasonLazyExpired   StatusReason = "confirmation_deadline_passed"
	StatusReasonAwaitingTeams StatusReason = "awaiting_confirmation"
)

// TimelineRow is one match as seen by a given viewer: the
// match's effective (lazily-expired) status, whether the verified result
// counted toward ranking, and the other three participants' aliases with
// visibility masking already applied.
type TimelineRow struct {
	MatchID          uuid.UUID               `json:"match_id"`
	LadderCode       profile_entities.Ladder  `json:"ladder_code"`
	CategoryID       uuid.UUID                `json:"category_id"`
	PlayedAt         time.Time                `json:"played_at"`
	EffectiveStatus  match_entities.MatchStatus `json:"effective_status"`
	StatusReason     StatusReason             `json:"status_reason,omitempty"`
	RankingImpact    bool                     `json:"ranking_impact"`
	FocusTeamNo      match_entities.TeamNo    `json:"focus_team_no"`
	WinnerTeamNo     *match_entities.TeamNo   `json:"winner_team_no,omitempty"`
	IsWin            *bool                    `json:"is_win,omitempty"`
	RivalAliases     []string                 `json:"rival_aliases"`
	CreatedByUserID  uuid.UUID                `json:"created_by_user_id"`
	CreatedByAlias   string                   `json:"created_by_alias"`
}

// ParticipantDetail is one of the four match participants for detail().
type ParticipantDetail struct {
	UserID             uuid.UUID                           `json:"user_id"`
	Alias              string                               `json:"alias"`
	Gender             *profile_entities.Gender             `json:"gender,omitempty"`
	TeamNo             match_entities.TeamNo                `json:"team_no"`
	ConfirmationStatus match_entities.ConfirmationStatus    `json:"confirmation_status"`
}

// MatchDetail is the full detail() response: the row plus its four
// participants and canonical/active score.
type MatchDetail struct {
	Row          TimelineRow          `json:"row"`
	Participants []ParticipantDetail  `json:"participants"`
	Score        *match_entities.Score `json:"score,omitempty"`
}
