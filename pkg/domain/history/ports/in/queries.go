package history_in

import (
	"context"

	"github.com/google/uuid"

	history_entities "github.com/rivio-api/rivio-api/pkg/domain/history/entities"
)

// TimelineQuery is the parsed `timeline()` request. Viewer
// is the authenticated caller; TargetUser is whose history is requested —
// they are equal for a self-view.
type TimelineQuery struct {
	Viewer     uuid.UUID
	TargetUser uuid.UUID
	Scope      history_entities.Scope
}

type TimelineQueryHandler interface {
	Handle(ctx context.Context, query TimelineQuery) ([]history_entities.TimelineRow, error)
}

// MatchDetailQuery is the parsed `detail(user_id, match_id)` request.
type MatchDetailQuery struct {
	Viewer  uuid.UUID
	MatchID uuid.UUID
}

type MatchDetailQueryHandler interface {
	Handle(ctx context.Context, query MatchDetailQuery) (*history_entities.MatchDetail, error)
}
