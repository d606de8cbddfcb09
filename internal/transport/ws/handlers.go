package ws

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		clientUuid = uuid.NewString()
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade connection", zap.Error(err))
		return
	}
	s.logger.Info("new connection", zap.String("client", clientUuid), zap.String("remote", r.RemoteAddr))
	client := newClient(conn, clientUuid)
	defer client.Close()
	if err := s.hub.Handle(s.ctx, client); err != nil {
		s.logger.Error("handle client", zap.String("client", clientUuid), zap.Error(err))
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	resp := domain.HealthCheckResponse{ActiveMatches: s.hub.ActiveMatches()}
	s.writeJson(w, http.StatusOK, resp)
}

func (s *server) scores(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")
	score, err := s.hub.Scores(r.Context(), sessionID)
	switch {
	case errors.Is(err, domain.ErrScoreNotFound):
		w.WriteHeader(http.StatusNotFound)
		return
	case err != nil:
		s.logger.Warn("get scores", zap.String("session", sessionID), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.writeJson(w, http.StatusOK, score)
}

func (s *server) writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsoniter.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}
