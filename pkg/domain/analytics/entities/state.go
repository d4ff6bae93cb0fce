package analytics_entities

import (
	"time"

	"github.com/google/uuid"

	profile_entities "github.com/rivio-api/rivio-api/pkg/domain/profile/entities"
)

// StreakType is "W" or "L".
type StreakType string

const (
	StreakWin  StreakType = "W"
	StreakLoss StreakType = "L"
)

// QualityBucket classifies the average opponent rating relative to the
// participant's own rating at match time (original_source _quality_bucket).
type QualityBucket string

const (
	QualityStronger QualityBucket = "stronger"
	QualitySimilar  QualityBucket = "similar"
	QualityWeaker   QualityBucket = "weaker"
)

// UserAnalyticsState is the per-(user,ladder) rolling aggregate. recent_form_bits/rolling_bits_50 are little-endian bitmasks: bit 0
// is the most recent match, pushed in with ((bits<<1)|win) & mask.
type UserAnalyticsState struct {
	UserID     uuid.UUID             `json:"user_id" db:"user_id"`
	LadderCode profile_entities.Ladder `json:"ladder_code" db:"ladder_code"`

	TotalVerifiedMatches int     `json:"total_verified_matches" db:"total_verified_matches"`
	Wins                 int     `json:"wins" db:"wins"`
	Losses               int     `json:"losses" db:"losses"`
	WinRate              float64 `json:"win_rate" db:"win_rate"`

	CurrentStreakType StreakType `json:"current_streak_type,omitempty" db:"current_streak_type"`
	CurrentStreakLen  int        `json:"current_streak_len" db:"current_streak_len"`
	BestWinStreak     int        `json:"best_win_streak" db:"best_win_streak"`
	BestLossStreak    int        `json:"best_loss_streak" db:"best_loss_streak"`

	RecentFormBits  uint32 `json:"recent_form_bits" db:"recent_form_bits"`
	RecentFormSize  int    `json:"recent_form_size" db:"recent_form_size"`
	Recent10Matches int    `json:"recent_10_matches" db:"recent_10_matches"`
	Recent10Wins    int    `json:"recent_10_wins" db:"recent_10_wins"`
	Recent10WinRate float64 `json:"recent_10_win_rate" db:"recent_10_win_rate"`

	RollingBits50   uint64  `json:"rolling_bits_50" db:"rolling_bits_50"`
	RollingSize50   int     `json:"rolling_size_50" db:"rolling_size_50"`
	Rolling5WinRate  float64 `json:"rolling_5_win_rate" db:"rolling_5_win_rate"`
	Rolling20WinRate float64 `json:"rolling_20_win_rate" db:"rolling_20_win_rate"`
	Rolling50WinRate float64 `json:"rolling_50_win_rate" db:"rolling_50_win_rate"`

	Matches7d  int `json:"matches_7d" db:"matches_7d"`
	Matches30d int `json:"matches_30d" db:"matches_30d"`
	Matches90d int `json:"matches_90d" db:"matches_90d"`

	CloseMatches   int     `json:"close_matches" db:"close_matches"`
	CloseMatchRate float64 `json:"close_match_rate" db:"close_match_rate"`

	VsStrongerMatches int     `json:"vs_stronger_matches" db:"vs_stronger_matches"`
	VsStrongerWins    int     `json:"vs_stronger_wins" db:"vs_stronger_wins"`
	VsStrongerWinRate float64 `json:"vs_stronger_win_rate" db:"vs_stronger_win_rate"`
	VsSimilarMatches  int     `json:"vs_similar_matches" db:"vs_similar_matches"`
	VsSimilarWins     int     `json:"vs_similar_wins" db:"vs_similar_wins"`
	VsSimilarWinRate  float64 `json:"vs_similar_win_rate" db:"vs_similar_win_rate"`
	VsWeakerMatches   int     `json:"vs_weaker_matches" db:"vs_weaker_matches"`
	VsWeakerWins      int     `json:"vs_weaker_wins" db:"vs_weaker_wins"`
	VsWeakerWinRate   float64 `json:"vs_weaker_win_rate" db:"vs_weaker_win_rate"`

	CurrentRating *int       `json:"current_rating,omitempty" db:"current_rating"`
	PeakRating    *int       `json:"peak_rating,omitempty" db:"peak_rating"`
	LastMatchID   *uuid.UUID `json:"last_match_id,omitempty" db:"last_match_id"`
	LastMatchAt   *time.Time `json:"last_match_at,omitempty" db:"last_match_at"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewUserAnalyticsState(userID uuid.UUID, ladder profile_entities.Ladder) *UserAnalyticsState {
	return &UserAnalyticsState{UserID: userID, LadderCode: ladder, UpdatedAt: time.Now().UTC()}
}

// UserAnalyticsMatchApplied is the idempotency + per-match audit row: one
// per (user,match), never rewritten once inserted except for the rolling
// win-rate snapshot columns (original_source _apply_participant_result).
type UserAnalyticsMatchApplied struct {
	UserID            uuid.UUID             `json:"user_id" db:"user_id"`
	MatchID           uuid.UUID             `json:"match_id" db:"match_id"`
	LadderCode        profile_entities.Ladder `json:"ladder_code" db:"ladder_code"`
	IsWin             bool                  `json:"is_win" db:"is_win"`
	IsCloseMatch      bool                  `json:"is_close_match" db:"is_close_match"`
	TeammateUserID    *uuid.UUID            `json:"teammate_user_id,omitempty" db:"teammate_user_id"`
	OpponentAUserID   *uuid.UUID            `json:"opponent_a_user_id,omitempty" db:"opponent_a_user_id"`
	OpponentBUserID   *uuid.UUID            `json:"opponent_b_user_id,omitempty" db:"opponent_b_user_id"`
	OpponentAvgRating *int                  `json:"opponent_avg_rating,omitempty" db:"opponent_avg_rating"`
	QualityBucket     QualityBucket         `json:"quality_bucket" db:"quality_bucket"`
	RatingBefore      *int                  `json:"rating_before,omitempty" db:"rating_before"`
	RatingAfter       *int                  `json:"rating_after,omitempty" db:"rating_after"`
	RatingDelta       *int                  `json:"rating_delta,omitempty" db:"rating_delta"`
	PlayedAt          time.Time             `json:"played_at" db:"played_at"`

	Rolling10WinRate float64    `json:"rolling_10_win_rate" db:"rolling_10_win_rate"`
	Rolling20WinRate float64    `json:"rolling_20_win_rate" db:"rolling_20_win_rate"`
	Rolling50WinRate float64    `json:"rolling_50_win_rate" db:"rolling_50_win_rate"`
	StreakTypeAfter  StreakType `json:"streak_type_after,omitempty" db:"streak_type_after"`
	StreakLenAfter   int        `json:"streak_len_after" db:"streak_len_after"`
}

// UserAnalyticsPartnerStats tallies a user's record playing alongside a
// given teammate, per ladder.
type UserAnalyticsPartnerStats struct {
	UserID        uuid.UUID             `json:"user_id" db:"user_id"`
	LadderCode    profile_entities.Ladder `json:"ladder_code" db:"ladder_code"`
	PartnerUserID uuid.UUID             `json:"partner_user_id" db:"partner_user_id"`
	Matches       int                   `json:"matches" db:"matches"`
	Wins          int                   `json:"wins" db:"wins"`
	Losses        int                   `json:"losses" db:"losses"`
	WinRate       float64               `json:"win_rate" db:"win_rate"`
	LastPlayedAt  time.Time             `json:"last_played_at" db:"last_played_at"`
	UpdatedAt     time.Time             `json:"updated_at" db:"updated_at"`
}

// UserAnalyticsRivalStats tallies a user's record against a given opponent,
// per ladder.
type UserAnalyticsRivalStats struct {
	UserID       uuid.UUID             `json:"user_id" db:"user_id"`
	LadderCode   profile_entities.Ladder `json:"ladder_code" db:"ladder_code"`
	RivalUserID  uuid.UUID             `json:"rival_user_id" db:"rival_user_id"`
	Matches      int                   `json:"matches" db:"matches"`
	Wins         int                   `json:"wins" db:"wins"`
	Losses       int                   `json:"losses" db:"losses"`
	WinRate      float64               `json:"win_rate" db:"win_rate"`
	LastPlayedAt time.Time             `json:"last_played_at" db:"last_played_at"`
	UpdatedAt    time.Time             `json:"updated_at" db:"updated_at"`
}
