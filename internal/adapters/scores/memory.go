package scores

import (
	"context"
	"sync"

	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
)

type memory struct {
	mu     *sync.RWMutex
	scores map[string]domain.Score
}

// NewMemory keeps tallies for the life of the process.
func NewMemory() domain.ScoreRepository {
	return &memory{
		mu:     &sync.RWMutex{},
		scores: make(map[string]domain.Score),
	}
}

func (m *memory) Record(_ context.Context, sessionID string, outcome domain.Outcome) error {
	if !outcome.State.Finished() {
		return errors.Errorf("outcome in state '%s' is not a finished round", outcome.State)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	score := m.scores[sessionID]
	score.SessionID = sessionID
	score.Add(outcome)
	m.scores[sessionID] = score
	return nil
}

func (m *memory) Get(_ context.Context, sessionID string) (domain.Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	score, ok := m.scores[sessionID]
	if !ok {
		return domain.Score{}, domain.ErrScoreNotFound
	}
	return score, nil
}
