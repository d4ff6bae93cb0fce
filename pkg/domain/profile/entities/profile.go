package profile_entities

import (
	"time"

	"github.com/google/uuid"
)

// Gender is the profile's self-reported gender. U is the default until the user completes their profile.
type Gender string

const (
	GenderMale    Gender = "M"
	GenderFemale  Gender = "F"
	GenderUnknown Gender = "U"
)

func (g Gender) IsPlayable() bool {
	return g == GenderMale || g == GenderFemale
}

type AvatarMode string

const (
	AvatarModePreset AvatarMode = "preset"
	AvatarModeUpload AvatarMode = "upload"
)

// UserProfile is 1:1 with identity.User. Invariants enforced by
// the use cases: alias non-empty and unique lowered; preset⇒preset_key set,
// upload⇒url set.
type UserProfile struct {
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	Alias           string     `json:"alias" db:"alias"`
	Gender          Gender     `json:"gender" db:"gender"`
	IsPublic        bool       `json:"is_public" db:"is_public"`
	Country         string     `json:"country,omitempty" db:"country"`
	City            string     `json:"city,omitempty" db:"city"`
	Handedness      string     `json:"handedness,omitempty" db:"handedness"`
	PreferredSide   string     `json:"preferred_side,omitempty" db:"preferred_side"`
	AvatarMode      AvatarMode `json:"avatar_mode,omitempty" db:"avatar_mode"`
	AvatarPresetKey string     `json:"avatar_preset_key,omitempty" db:"avatar_preset_key"`
	AvatarURL       string     `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

func NewUserProfile(userID uuid.UUID, alias string) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		UserID:    userID,
		Alias:     alias,
		Gender:    GenderUnknown,
		IsPublic:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPlaceholderAlias mirrors the original's _is_placeholder_alias: a profile
// whose alias was never customized still blocks play eligibility.
func (p *UserProfile) IsPlaceholderAlias() bool {
	return len(p.Alias) >= len("player_") && p.Alias[:len("player_")] == "player_"
}

// ValidAvatar checks the (preset⇒preset_key) ∧ (upload⇒url) invariant.
func (p *UserProfile) ValidAvatar() bool {
	switch p.AvatarMode {
	case AvatarModePreset:
		return p.AvatarPresetKey != ""
	case AvatarModeUpload:
		return p.AvatarURL != ""
	default:
		return true
	}
}
