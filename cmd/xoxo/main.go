package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/kiryu-dev/xoxo/internal/adapters/scores"
	"github.com/kiryu-dev/xoxo/internal/config"
	"github.com/kiryu-dev/xoxo/internal/effects"
	"github.com/kiryu-dev/xoxo/internal/render/tui"
	"github.com/kiryu-dev/xoxo/internal/usecase/game"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultLogFile = "xoxo.log"

func main() {
	cfgPath := flag.String("config", "", "path to config")
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
	if err := run(cfg, logger); err != nil {
		logger.Error("game stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	opts, err := cfg.SessionOptions(cfg.BoardRect())
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.WithMessage(err, "new screen")
	}
	if err := screen.Init(); err != nil {
		return errors.WithMessage(err, "init screen")
	}
	defer screen.Fini()
	screen.EnableMouse()

	fx := effects.New(effects.DefaultSettings(), uint64(time.Now().UnixNano()))
	session, err := game.NewSession(opts, fx, logger)
	if err != nil {
		return err
	}
	frame := time.Second / time.Duration(cfg.Loop.TickRate)
	g := &localGame{
		sessionID: uuid.NewString(),
		session:   session,
		fx:        fx,
		renderer:  tui.NewRenderer(screen),
		tally:     scores.NewMemory(),
		size:      screen.Size,
		dt:        frame.Seconds(),
		layout:    tui.NewLayout(screen.Size()),
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller := tui.NewPoller(screen, logger)
	poller.Start(ctx)
	g.input = poller
	logger.Info("local game started", zap.String("session", g.sessionID))

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for range ticker.C {
		more, err := g.frame(ctx)
		if err != nil || !more {
			return err
		}
	}
	return nil
}
