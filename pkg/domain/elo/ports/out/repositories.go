package elo_out

import (
	"context"

	"github.com/google/uuid"

	elo_entities "github.com/rivio-api/rivio-api/pkg/domain/elo/entities"
)

type RatingEventWriter interface {
	Create(ctx context.Context, event *elo_entities.RatingEvent) error
}

type RatingEventReader interface {
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]*elo_entities.RatingEvent, error)
}
