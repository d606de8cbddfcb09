package hub

import (
	"context"
	"time"

	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	inputBufSize = 16
	maxQueued    = 64
)

type seatInput struct {
	seat  int
	input domain.Input
}

// match drives one session. The loop goroutine is the only one touching the
// session; readers hand input over through a channel.
type match struct {
	id      string
	session domain.GameSession
	clients [2]domain.Client
	scores  domain.ScoreRepository
	frame   time.Duration
	inputs  chan seatInput
	queue   []seatInput
	done    chan struct{}
	logger  *zap.Logger
}

func newMatch(id string, session domain.GameSession, clients [2]domain.Client, scores domain.ScoreRepository,
	frame time.Duration, logger *zap.Logger) *match {
	return &match{
		id:      id,
		session: session,
		clients: clients,
		scores:  scores,
		frame:   frame,
		inputs:  make(chan seatInput, inputBufSize),
		done:    make(chan struct{}),
		logger:  logger.With(zap.String("session", id)),
	}
}

func (m *match) run(ctx context.Context) error {
	if err := m.welcome(); err != nil {
		m.close()
		return errors.WithMessage(err, "welcome players")
	}
	g, gctx := errgroup.WithContext(ctx)
	for seat, client := range m.clients {
		g.Go(func() error {
			m.read(seat, client)
			return nil
		})
	}
	g.Go(func() error {
		defer m.close()
		return m.loop(gctx)
	})
	return g.Wait()
}

func (m *match) welcome() error {
	snap := m.session.Snapshot()
	for seat, client := range m.clients {
		err := client.WriteMessage(domain.Message{
			Type: domain.Welcome,
			Payload: domain.WelcomePayload{
				SessionID: m.id,
				Seat:      seat,
				Snapshot:  snap,
			},
		})
		if err != nil {
			return errors.WithMessagef(err, "send welcome to seat %d", seat)
		}
	}
	return nil
}

func (m *match) read(seat int, client domain.Client) {
	for {
		msg, err := client.ReadMessage()
		if err != nil {
			m.logger.Info("player left", zap.Int("seat", seat), zap.Error(err))
			m.push(seatInput{seat: seat, input: domain.Input{Quit: true}})
			return
		}
		if msg.Type != domain.Pointer {
			m.logger.Warn("unexpected message type", zap.Int("seat", seat), zap.String("type", string(msg.Type)))
			continue
		}
		payload, err := utils.DecodePayload[domain.PointerPayload](msg.Payload)
		if err != nil {
			m.logger.Warn("bad pointer payload", zap.Int("seat", seat), zap.Error(err))
			continue
		}
		if !m.push(seatInput{seat: seat, input: payload.Input}) {
			return
		}
	}
}

func (m *match) push(in seatInput) bool {
	select {
	case m.inputs <- in:
		return true
	case <-m.done:
		return false
	}
}

func (m *match) loop(ctx context.Context) error {
	ticker := time.NewTicker(m.frame)
	defer ticker.Stop()
	last := m.session.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		m.drain()
		state := m.session.Update(m.next(m.session.InputDue()))
		snap := m.session.Snapshot()
		if snap.Version != last.Version {
			if !last.State.Finished() && snap.State.Finished() {
				m.record(ctx, snap)
			}
			m.broadcast(snap)
			last = snap
		}
		if state == domain.End {
			return nil
		}
	}
}

func (m *match) drain() {
	for {
		select {
		case in := <-m.inputs:
			if len(m.queue) < maxQueued {
				m.queue = append(m.queue, in)
			}
		default:
			return
		}
	}
}

// next picks this frame's input. A queued quit always wins; otherwise, on
// frames that take input, moves from the seat not on turn are dropped and
// reset only counts once the round is over.
func (m *match) next(due bool) domain.Input {
	for _, in := range m.queue {
		if in.input.Quit {
			m.queue = m.queue[:0]
			return domain.Input{Quit: true}
		}
	}
	if !due {
		return domain.Input{}
	}
	for len(m.queue) > 0 {
		in := m.queue[0]
		m.queue = m.queue[1:]
		switch {
		case in.input.Reset && m.session.State().Finished():
			return domain.Input{Reset: true}
		case in.input.Register && in.seat == m.session.Current() && m.session.State() == domain.None:
			return domain.Input{Point: in.input.Point, Register: true}
		default:
			m.logger.Debug("input dropped", zap.Int("seat", in.seat), zap.Int("current", m.session.Current()))
		}
	}
	return domain.Input{}
}

func (m *match) record(ctx context.Context, snap domain.Snapshot) {
	outcome := domain.Outcome{State: snap.State, Winner: snap.Winner}
	if err := m.scores.Record(ctx, m.id, outcome); err != nil {
		m.logger.Warn("failed to record outcome", zap.Error(err))
	}
}

func (m *match) broadcast(snap domain.Snapshot) {
	msg := domain.Message{Type: domain.State, Payload: domain.StatePayload{Snapshot: snap}}
	for seat, client := range m.clients {
		if err := client.WriteMessage(msg); err != nil {
			m.logger.Debug("failed to send state", zap.Int("seat", seat), zap.Error(err))
		}
	}
}

func (m *match) close() {
	close(m.done)
	for _, client := range m.clients {
		client.Close()
	}
}
