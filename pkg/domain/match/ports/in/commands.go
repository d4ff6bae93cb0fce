package match_in

import (
	"context"
	"time"

	"github.com/google/uuid"

	match_entities "github.com/rivio-api/rivio-api/pkg/domain/match/entities"
)

type CreateMatchCommand struct {
	CreatedBy    uuid.UUID
	ParticipantA1 uuid.UUID
	ParticipantA2 uuid.UUID
	ParticipantB1 uuid.UUID
	ParticipantB2 uuid.UUID
	PlayedAt     time.Time
	ClubID       *uuid.UUID
	ScoreSets    []match_entities.ScoreSet
	WinnerTeamNo int
}

type CreateMatchCommandHandler interface {
	Handle(ctx context.Context, cmd CreateMatchCommand) (*match_entities.Match, error)
}

type ConfirmMatchCommand struct {
	MatchID   uuid.UUID
	Actor     uuid.UUID
	Note      string
	Source    match_entities.ConfirmationSource
	ScoreSets []match_entities.ScoreSet
	HasScore  bool
}

type ConfirmMatchCommandHandler interface {
	Handle(ctx context.Context, cmd ConfirmMatchCommand) (*match_entities.Match, error)
}

type DisputeMatchCommand struct {
	MatchID uuid.UUID
	Actor   uuid.UUID
	Reason  string
}

type DisputeMatchCommandHandler interface {
	Handle(ctx context.Context, cmd DisputeMatchCommand) (*match_entities.Match, error)
}
