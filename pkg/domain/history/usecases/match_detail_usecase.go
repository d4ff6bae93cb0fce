package history_usecases

import (
	"context"
	"time"

	common "github.com/rivio-api/rivio-api/pkg/domain"
	history_entities "github.com/rivio-api/rivio-api/pkg/domain/history/entities"
	history_in "github.com/rivio-api/rivio-api/pkg/domain/history/ports/in"
	history_out "github.com/rivio-api/rivio-api/pkg/domain/history/ports/out"
	history_services "github.com/rivio-api/rivio-api/pkg/domain/history/services"
)

// MatchDetailUseCase implements history_in.MatchDetailQueryHandler). The match must have the requesting user as a participant —
// GetForUser enforces that at the query level.
type MatchDetailUseCase struct {
	Matches history_out.MatchHistoryReader
}

func NewMatchDetailUseCase(matches history_out.MatchHistoryReader) *MatchDetailUseCase {
	return &MatchDetailUseCase{Matches: matches}
}

func (u *MatchDetailUseCase) Handle(ctx context.Context, query history_in.MatchDetailQuery) (*history_entities.MatchDetail, error) {
	raw, err := u.Matches.GetForUser(ctx, query.Viewer, query.MatchID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, common.NewErrNotFound(common.ResourceTypeMatch, "id", query.MatchID)
	}

	detail := history_services.BuildDetail(raw, query.Viewer, time.Now().UTC())
	return &detail, nil
}
