package profile_entities

import (
	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
)

// Ladder is the fixed rating scope set. Reuses common.LadderCode rather than redeclaring it.
type Ladder = common.LadderCode

const (
	LadderHM = common.LadderHM
	LadderWM = common.LadderWM
	LadderMX = common.LadderMX
)

// Category is (ladder_code, code, sort_order); sort_order ascending is
// stronger, e.g. HM "1ra" (1) is the top division.
type Category struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LadderCode Ladder    `json:"ladder_code" db:"ladder_code"`
	Code       string    `json:"code" db:"code"`
	Name       string    `json:"name" db:"name"`
	SortOrder  int       `json:"sort_order" db:"sort_order"`
}
