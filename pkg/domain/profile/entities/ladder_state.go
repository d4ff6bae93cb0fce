package profile_entities

import (
	"time"

	"github.com/google/uuid"
)

// UserLadderState is a per-(user,ladder) rating snapshot.
type UserLadderState struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	LadderCode      Ladder    `json:"ladder_code" db:"ladder_code"`
	CategoryID      uuid.UUID `json:"category_id" db:"category_id"`
	Rating          int       `json:"rating" db:"rating"`
	VerifiedMatches int       `json:"verified_matches" db:"verified_matches"`
	IsProvisional   bool      `json:"is_provisional" db:"is_provisional"`
	TrustScore      int       `json:"trust_score" db:"trust_score"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

const (
	defaultRating     = 1000
	defaultTrustScore = 100
)

func NewUserLadderState(userID uuid.UUID, ladder Ladder, categoryID uuid.UUID, provisionalMatches int) *UserLadderState {
	now := time.Now().UTC()
	return &UserLadderState{
		UserID:          userID,
		LadderCode:      ladder,
		CategoryID:      categoryID,
		Rating:          defaultRating,
		VerifiedMatches: 0,
		IsProvisional:   true,
		TrustScore:      defaultTrustScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanChangeCategory implements 's invariant: category may only
// change while verified_matches=0.
func (s *UserLadderState) CanChangeCategory() bool {
	return s.VerifiedMatches == 0
}

// RecalculateProvisional refreshes is_provisional against the configured
// PROVISIONAL_MATCHES threshold.
func (s *UserLadderState) RecalculateProvisional(provisionalMatches int) {
	s.IsProvisional = s.VerifiedMatches < provisionalMatches
}

// MxCategoryMap is a static lookup (gender, primary_code) -> (mx_code,
// mx_score) used to derive a user's MX category from their HM/WM category.
type MxCategoryMap struct {
	Gender      Gender `json:"gender" db:"gender"`
	PrimaryCode string `json:"primary_code" db:"primary_code"`
	MxCode      string `json:"mx_code" db:"mx_code"`
	MxScore     int    `json:"mx_score" db:"mx_score"`
}
