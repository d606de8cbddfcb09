package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/kiryu-dev/xoxo/internal/adapters/webapi"
	"github.com/kiryu-dev/xoxo/internal/config"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/effects"
	"github.com/kiryu-dev/xoxo/internal/render/tui"
	"github.com/kiryu-dev/xoxo/internal/transport/ws"
	"github.com/kiryu-dev/xoxo/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLogFile = "xoxo-client.log"
	apiTimeout     = 3 * time.Second
	snapshotBuffer = 16
)

func main() {
	cfgPath := flag.String("config", "", "path to config")
	addr := flag.String("addr", "localhost:8080", "match server address")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	c := &client{
		addr:   *addr,
		frame:  time.Second / time.Duration(cfg.Loop.TickRate),
		api:    webapi.New(),
		fx:     effects.New(effects.DefaultSettings(), uint64(time.Now().UnixNano())),
		logger: logger,
	}
	if err := c.run(context.Background()); err != nil {
		logger.Error("client stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if c.tally.SessionID != "" {
		fmt.Printf("session %s: %d : %d, ties %d\n", c.tally.SessionID, c.tally.Wins[0], c.tally.Wins[1], c.tally.Ties)
	}
}

type serverAPI interface {
	HealthCheck(ctx context.Context, addr string) (*domain.HealthCheckResponse, error)
	Scores(ctx context.Context, addr string, sessionID string) (domain.Score, error)
}

type client struct {
	addr    string
	frame   time.Duration
	api     serverAPI
	fx      *effects.System
	welcome domain.WelcomePayload
	tally   domain.Score
	logger  *zap.Logger
}

// checkServer asks the server for its health before joining the queue, so a
// stopped server fails fast instead of at the websocket handshake.
func (c *client) checkServer(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()
	health, err := c.api.HealthCheck(ctx, "http://"+c.addr)
	if err != nil {
		return errors.WithMessagef(err, "server at '%s' is not reachable", c.addr)
	}
	c.logger.Info("server is up", zap.Int64("active_matches", health.ActiveMatches))
	fmt.Printf("connected to %s, %d matches in progress\n", c.addr, health.ActiveMatches)
	return nil
}

func (c *client) run(ctx context.Context) error {
	if err := c.checkServer(ctx); err != nil {
		return err
	}
	conn, err := ws.Dial(ctx, c.addr, uuid.NewString())
	if err != nil {
		return err
	}
	defer conn.Close()
	fmt.Println("waiting for an opponent...")
	msg, err := conn.ReadMessage()
	if err != nil {
		return errors.WithMessage(err, "read welcome")
	}
	if msg.Type != domain.Welcome {
		return errors.Errorf("expected welcome, got '%s'", msg.Type)
	}
	c.welcome, err = utils.DecodePayload[domain.WelcomePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "decode welcome payload")
	}
	c.logger.Info("joined match",
		zap.String("session", c.welcome.SessionID),
		zap.Int("seat", c.welcome.Seat))

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.WithMessage(err, "new screen")
	}
	if err := screen.Init(); err != nil {
		return errors.WithMessage(err, "init screen")
	}
	defer screen.Fini()
	screen.EnableMouse()

	snapshots := make(chan domain.Snapshot, snapshotBuffer)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		return c.read(ctx, conn, snapshots)
	})
	errGroup.Go(func() error {
		defer func() {
			cancel()
			conn.Close()
		}()
		return c.loop(ctx, screen, conn, snapshots)
	})
	return errGroup.Wait()
}

// read forwards server snapshots until the match ends or the connection
// closes.
func (c *client) read(ctx context.Context, conn domain.Client, snapshots chan<- domain.Snapshot) error {
	for {
		msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, domain.ErrConnectionClosed) {
				return nil
			}
			return errors.WithMessage(err, "read message")
		}
		if msg.Type != domain.State {
			continue
		}
		payload, err := utils.DecodePayload[domain.StatePayload](msg.Payload)
		if err != nil {
			return errors.WithMessage(err, "decode state payload")
		}
		select {
		case snapshots <- payload.Snapshot:
		case <-ctx.Done():
			return nil
		}
		if payload.Snapshot.State == domain.End {
			return nil
		}
	}
}

func (c *client) loop(ctx context.Context, screen tcell.Screen, conn domain.Client, snapshots <-chan domain.Snapshot) error {
	var (
		poller   = tui.NewPoller(screen, c.logger)
		renderer = tui.NewRenderer(screen)
		layout   = tui.NewLayout(screen.Size())
		snap     = c.welcome.Snapshot
	)
	poller.Start(ctx)
	ticker := time.NewTicker(c.frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		in, resized := poller.Poll(layout, snap.Grid.Rect)
		if resized {
			layout = tui.NewLayout(screen.Size())
		}
		if !in.Empty() {
			err := conn.WriteMessage(domain.Message{
				Type:    domain.Pointer,
				Payload: domain.PointerPayload{Input: in},
			})
			if err != nil {
				return errors.WithMessage(err, "send pointer")
			}
		}
		if in.Quit {
			return nil
		}

	drain:
		for {
			select {
			case next := <-snapshots:
				c.observe(ctx, snap, next)
				snap = next
			default:
				break drain
			}
		}
		if snap.State == domain.End {
			return nil
		}
		c.fx.Step(c.frame.Seconds())
		renderer.Draw(tui.Frame{
			Snapshot:  snap,
			Layout:    layout,
			Particles: c.fx.Particles(),
			Status:    c.status(snap),
		})
	}
}

// observe reacts to round transitions: bursts when a round finishes, a
// fresh tally from the server and a clean board on reset.
func (c *client) observe(ctx context.Context, prev, next domain.Snapshot) {
	if prev.State != domain.Win && next.State == domain.Win {
		if winner, ok := next.WinnerPlayer(); ok {
			for _, at := range next.WinPoints {
				c.fx.Burst(at, winner.Color)
			}
		}
	}
	if prev.State != domain.Tie && next.State == domain.Tie {
		c.fx.Burst(next.Grid.Rect.Center(), domain.White)
	}
	if prev.State.Finished() && next.State == domain.None {
		c.fx.Clear()
	}
	if prev.State == domain.None && next.State.Finished() {
		ctx, cancel := context.WithTimeout(ctx, apiTimeout)
		defer cancel()
		score, err := c.api.Scores(ctx, "http://"+c.addr, c.welcome.SessionID)
		if err != nil {
			c.logger.Warn("fetch scores", zap.Error(err))
			return
		}
		c.tally = score
	}
}

func (c *client) status(snap domain.Snapshot) string {
	line := tui.StatusLine(snap, c.tally)
	for _, p := range snap.Players {
		if p.ID == c.welcome.Seat {
			return line + "   you: " + p.Name
		}
	}
	return line
}
