package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	gamePath          = "/game"
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type server struct {
	srv      *http.Server
	hub      domain.HubUseCase
	upgrader websocket.Upgrader
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(addr string, hub domain.HubUseCase, logger *zap.Logger) *server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &server{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

func (s *server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(gamePath, s.serveWs)
	r.Get("/health", s.healthCheck)
	r.Get("/scores/{session}", s.scores)
	return r
}

// ListenAndServe blocks until the server stops. A clean Shutdown is not an
// error.
func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

// Shutdown ends running matches and stops accepting connections.
func (s *server) Shutdown() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
