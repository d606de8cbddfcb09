package hub

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	clientQueueBufSize = 2
)

// SessionFactory builds the game for a new match.
type SessionFactory func() (domain.GameSession, error)

type enqueuedClient struct {
	client domain.Client
	done   chan error
}

type useCase struct {
	newSession  SessionFactory
	scores      domain.ScoreRepository
	frame       time.Duration
	clientQueue chan enqueuedClient
	active      *atomic.Int64
	logger      *zap.Logger
}

func New(newSession SessionFactory, scores domain.ScoreRepository, tickRate int, logger *zap.Logger) *useCase {
	return &useCase{
		newSession:  newSession,
		scores:      scores,
		frame:       time.Second / time.Duration(tickRate),
		clientQueue: make(chan enqueuedClient, clientQueueBufSize),
		active:      atomic.NewInt64(0),
		logger:      logger,
	}
}

// Handle queues client for the next match and blocks until that match ends.
func (u *useCase) Handle(ctx context.Context, client domain.Client) error {
	done := make(chan error, 1)
	select {
	case u.clientQueue <- enqueuedClient{client: client, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	u.logger.Info("client queued", zap.String("client", client.Uuid()))
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run pairs queued clients until ctx is done.
func (u *useCase) Run(ctx context.Context) error {
	for {
		var lhs, rhs enqueuedClient
		select {
		case lhs = <-u.clientQueue:
		case <-ctx.Done():
			return nil
		}
		select {
		case rhs = <-u.clientQueue:
		case <-ctx.Done():
			lhs.done <- ctx.Err()
			return nil
		}
		go u.startMatch(ctx, lhs, rhs)
	}
}

func (u *useCase) startMatch(ctx context.Context, lhs, rhs enqueuedClient) {
	finish := func(err error) {
		lhs.done <- err
		rhs.done <- err
	}
	session, err := u.newSession()
	if err != nil {
		lhs.client.Close()
		rhs.client.Close()
		finish(errors.WithMessage(err, "create session"))
		return
	}
	m := newMatch(uuid.NewString(), session, [2]domain.Client{lhs.client, rhs.client}, u.scores, u.frame, u.logger)
	u.active.Inc()
	u.logger.Info("match started",
		zap.String("session", m.id),
		zap.String("seat 0", lhs.client.Uuid()),
		zap.String("seat 1", rhs.client.Uuid()))
	err = m.run(ctx)
	u.active.Dec()
	u.logger.Info("match finished", zap.String("session", m.id), zap.Error(err))
	finish(err)
}

func (u *useCase) ActiveMatches() int64 {
	return u.active.Load()
}

func (u *useCase) Scores(ctx context.Context, sessionID string) (domain.Score, error) {
	return u.scores.Get(ctx, sessionID)
}
