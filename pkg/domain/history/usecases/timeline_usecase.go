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

// TimelineUseCase implements history_in.TimelineQueryHandler. Self may request any scope; a non-self viewer is restricted to
// the target's verified matches, and only when the target profile is
// public.
type TimelineUseCase struct {
	Matches  history_out.MatchHistoryReader
	Profiles history_out.ProfileVisibilityReader
}

func NewTimelineUseCase(matches history_out.MatchHistoryReader, profiles history_out.ProfileVisibilityReader) *TimelineUseCase {
	return &TimelineUseCase{Matches: matches, Profiles: profiles}
}

func (u *TimelineUseCase) Handle(ctx context.Context, query history_in.TimelineQuery) ([]history_entities.TimelineRow, error) {
	scope := query.Scope
	if scope == "" {
		scope = history_entities.ScopeVerified
	}

	isSelf := query.Viewer == query.TargetUser
	if !isSelf {
		if scope != history_entities.ScopeVerified {
			return nil, common.NewErrNotFound(common.ResourceTypeUserProfile, "user_id", query.TargetUser)
		}
		public, err := u.Profiles.IsPublic(ctx, query.TargetUser)
		if err != nil {
			return nil, err
		}
		if !public {
			return nil, common.NewErrNotFound(common.ResourceTypeUserProfile, "user_id", query.TargetUser)
		}
	}

	raws, err := u.Matches.ListForUser(ctx, query.TargetUser, string(scope))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]history_entities.TimelineRow, 0, len(raws))
	for _, raw := range raws {
		rows = append(rows, history_services.BuildRow(raw, query.Viewer, now))
	}
	return rows, nil
}
