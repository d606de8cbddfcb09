package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiryu-dev/xoxo/internal/adapters/scores"
	"github.com/kiryu-dev/xoxo/internal/config"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/transport/ws"
	"github.com/kiryu-dev/xoxo/internal/usecase/game"
	"github.com/kiryu-dev/xoxo/internal/usecase/hub"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfgPath := flag.String("config", "./config.yml", "path to config")
	flag.Parse()
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	// the server has no screen to protect, so it always logs to stderr
	cfg.Log.File = ""
	logger, err := cfg.Log.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts, err := cfg.SessionOptions(cfg.BoardRect())
	if err != nil {
		logger.Fatal("build session options", zap.Error(err))
	}
	repo, closeRepo, err := scoreRepository(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("open score repository", zap.Error(err))
	}
	defer closeRepo()

	var (
		newSession = func() (domain.GameSession, error) {
			session, err := game.NewSession(opts, nil, logger)
			if err != nil {
				return nil, err
			}
			return session, nil
		}
		hub    = hub.New(newSession, repo, cfg.Loop.TickRate, logger)
		server = ws.New(cfg.Server.Addr, hub, logger)
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		return hub.Run(ctx)
	})
	errGroup.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		return server.ListenAndServe()
	})
	errGroup.Go(func() error {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}

// scoreRepository picks redis when an address is configured and falls back
// to process memory otherwise.
func scoreRepository(cfg config.RedisConfig, logger *zap.Logger) (domain.ScoreRepository, func(), error) {
	if cfg.Addr == "" {
		logger.Info("keeping scores in memory")
		return scores.NewMemory(), func() {}, nil
	}
	client, err := scores.Connect(context.Background(), cfg.Addr)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("keeping scores in redis", zap.String("addr", cfg.Addr))
	return scores.NewRedis(client), func() {
		_ = client.Close()
	}, nil
}
