package domain

import (
	"context"
)

type HubUseCase interface {
	Handle(ctx context.Context, client Client) error
	ActiveMatches() int64
	Scores(ctx context.Context, sessionID string) (Score, error)
}

type HealthCheckResponse struct {
	ActiveMatches int64 `json:"active_matches"`
}
