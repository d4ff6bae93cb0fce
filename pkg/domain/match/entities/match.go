package match_entities

import (
	"time"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

type MatchStatus string

const (
	MatchStatusPendingConfirm MatchStatus = "pending_confirm"
	MatchStatusVerified       MatchStatus = "verified"
	MatchStatusDisputed       MatchStatus = "disputed"
	MatchStatusExpired        MatchStatus = "expired"
	MatchStatusVoid           MatchStatus = "void"
)

// Match is the protocol entity.
type Match struct {
	ID                    uuid.UUID            `json:"id" db:"id"`
	LadderCode            profile_entities.Ladder `json:"ladder_code" db:"ladder_code"`
	CategoryID            uuid.UUID            `json:"category_id" db:"category_id"`
	ClubID                *uuid.UUID           `json:"club_id,omitempty" db:"club_id"`
	PlayedAt              time.Time            `json:"played_at" db:"played_at"`
	CreatedBy             uuid.UUID            `json:"created_by" db:"created_by"`
	Status                MatchStatus          `json:"status" db:"status"`
	ConfirmationDeadline  time.Time            `json:"confirmation_deadline" db:"confirmation_deadline"`
	ConfirmedCount        int                  `json:"confirmed_count" db:"confirmed_count"`
	HasDispute            bool                 `json:"has_dispute" db:"has_dispute"`
	RankProcessedAt       *time.Time           `json:"rank_processed_at,omitempty" db:"rank_processed_at"`
	AntiFarmingWeight     float64              `json:"anti_farming_weight" db:"anti_farming_weight"`
	ProposedScoreJSON     []byte               `json:"proposed_score_json,omitempty" db:"proposed_score_json"`
	ProposedWinnerTeamNo  *int                 `json:"proposed_winner_team_no,omitempty" db:"proposed_winner_team_no"`
	ProposedBy            *uuid.UUID           `json:"proposed_by,omitempty" db:"proposed_by"`
	ProposedAt            *time.Time           `json:"proposed_at,omitempty" db:"proposed_at"`
	ProposalCount         int                  `json:"proposal_count" db:"proposal_count"`
	CreatedAt             time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at" db:"updated_at"`
}

func NewMatch(ladder profile_entities.Ladder, categoryID uuid.UUID, createdBy uuid.UUID, playedAt time.Time, confirmWindowHours int) *Match {
	now := time.Now().UTC()
	return &Match{
		ID:                   uuid.New(),
		LadderCode:           ladder,
		CategoryID:           categoryID,
		PlayedAt:             playedAt,
		CreatedBy:            createdBy,
		Status:               MatchStatusPendingConfirm,
		ConfirmationDeadline: now.Add(time.Duration(confirmWindowHours) * time.Hour),
		ConfirmedCount:       1,
		AntiFarmingWeight:    1.0,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ActiveScoreJSON returns the currently live proposal, falling back to the
// ratified MatchScore when no proposal is pending.
func (m *Match) ActiveScoreJSON(ratified []byte) []byte {
	if m.ProposedScoreJSON != nil {
		return m.ProposedScoreJSON
	}
	return ratified
}

// IsExpired reports whether lazy expiration should fire: pending and past
// the confirmation deadline.
func (m *Match) IsExpired(now time.Time) bool {
	return m.Status == MatchStatusPendingConfirm && now.After(m.ConfirmationDeadline)
}

// ApplyProposal stores a new score proposal, resetting the proposer's
// single confirmation.
func (m *Match) ApplyProposal(scoreJSON []byte, winnerTeamNo int, proposer uuid.UUID, now time.Time) {
	m.ProposedScoreJSON = scoreJSON
	m.ProposedWinnerTeamNo = &winnerTeamNo
	m.ProposedBy = &proposer
	m.ProposedAt = &now
	m.ProposalCount++
	m.ConfirmedCount = 1
	m.UpdatedAt = now
}

// Ratify copies the active proposal into the canonical score, clears
// pending-proposal state, and marks the match verified.
func (m *Match) Ratify(now time.Time) {
	m.ProposedScoreJSON = nil
	m.ProposedWinnerTeamNo = nil
	m.ProposedBy = nil
	m.ProposedAt = nil
	m.Status = MatchStatusVerified
	m.UpdatedAt = now
}

func (m *Match) MarkExpired(now time.Time) {
	m.Status = MatchStatusExpired
	m.UpdatedAt = now
}

func (m *Match) MarkDisputed(now time.Time) {
	m.Status = MatchStatusDisputed
	m.HasDispute = true
	m.UpdatedAt = now
}

// MarkRankProcessed sets the single-shot Elo-application guard.
func (m *Match) MarkRankProcessed(now time.Time) {
	m.RankProcessedAt = &now
}

func (m *Match) IsRankProcessed() bool {
	return m.RankProcessedAt != nil
}

type TeamNo int

const (
	Team1 TeamNo = 1
	Team2 TeamNo = 2
)

// MatchParticipant is one of the exactly-4 players.
type MatchParticipant struct {
	MatchID uuid.UUID `json:"match_id" db:"match_id"`
	UserID  uuid.UUID `json:"user_id" db:"user_id"`
	TeamNo  TeamNo    `json:"team_no" db:"team_no"`
}

// MatchScore is the canonical, ratified score — distinct from Match's
// proposed_* fields, which hold an in-flight proposal.
type MatchScore struct {
	MatchID      uuid.UUID `json:"match_id" db:"match_id"`
	ScoreJSON    []byte    `json:"score_json" db:"score_json"`
	WinnerTeamNo TeamNo    `json:"winner_team_no" db:"winner_team_no"`
}

type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationDisputed  ConfirmationStatus = "disputed"
)

type ConfirmationSource string

const (
	ConfirmationSourceCreator ConfirmationSource = "creator"
	ConfirmationSourceManual  ConfirmationSource = "manual"
)

// MatchConfirmation is one per participant.
type MatchConfirmation struct {
	MatchID   uuid.UUID          `json:"match_id" db:"match_id"`
	UserID    uuid.UUID          `json:"user_id" db:"user_id"`
	Status    ConfirmationStatus `json:"status" db:"status"`
	DecidedAt *time.Time         `json:"decided_at,omitempty" db:"decided_at"`
	Note      string             `json:"note,omitempty" db:"note"`
	Source    ConfirmationSource `json:"source,omitempty" db:"source"`
}

// MatchDispute is opened on any participant dispute (legacy path, // §4.2.3).
type MatchDispute struct {
	ID        uuid.UUID `json:"id" db:"id"`
	MatchID   uuid.UUID `json:"match_id" db:"match_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Reason    string    `json:"reason" db:"reason"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewMatchDispute(matchID, userID uuid.UUID, reason string) *MatchDispute {
	return &MatchDispute{
		ID:        uuid.New(),
		MatchID:   matchID,
		UserID:    userID,
		Reason:    reason,
		Status:    "open",
		CreatedAt: time.Now().UTC(),
	}
}
