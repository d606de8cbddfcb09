package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kiryu-dev/xoxo/internal/adapters/webapi"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/kiryu-dev/xoxo/internal/effects"
	"github.com/kiryu-dev/xoxo/internal/geom"
	"github.com/kiryu-dev/xoxo/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newClient(t *testing.T, addr string, api serverAPI) *client {
	t.Helper()
	return &client{
		addr:   addr,
		frame:  time.Second / 60,
		api:    api,
		fx:     effects.New(effects.DefaultSettings(), 1),
		logger: zaptest.NewLogger(t),
	}
}

func TestClient_CheckServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"active_matches":2}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	t.Run("up", func(t *testing.T) {
		c := newClient(t, strings.TrimPrefix(ts.URL, "http://"), webapi.New())
		require.NoError(t, c.checkServer(context.Background()))
	})

	t.Run("down", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		addr := strings.TrimPrefix(down.URL, "http://")
		down.Close()

		c := newClient(t, addr, webapi.New())
		err := c.checkServer(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server at '"+addr+"' is not reachable")
	})

	t.Run("run stops before dialing", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		addr := strings.TrimPrefix(down.URL, "http://")
		down.Close()

		err := newClient(t, addr, webapi.New()).run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not reachable")
	})
}

type stubAPI struct {
	score domain.Score
	calls int
}

func (s *stubAPI) HealthCheck(context.Context, string) (*domain.HealthCheckResponse, error) {
	return &domain.HealthCheckResponse{}, nil
}

func (s *stubAPI) Scores(context.Context, string, string) (domain.Score, error) {
	s.calls++
	return s.score, nil
}

func TestClient_Observe(t *testing.T) {
	info := grid.New(geom.Rect{Width: 300, Height: 300}, 3, 3)
	red := domain.PlayerInfo{ID: 0, Name: "Red", Color: domain.Color{R: 0xe0}}
	playing := domain.Snapshot{Grid: info, State: domain.None, Winner: domain.NoPlayer, Players: []domain.PlayerInfo{red}}
	ctx := context.Background()

	t.Run("win bursts from every win cell", func(t *testing.T) {
		api := &stubAPI{score: domain.Score{SessionID: "s", Wins: [2]int{1, 0}}}
		c := newClient(t, "localhost:0", api)
		won := playing
		won.State, won.Winner = domain.Win, 0
		won.WinPoints = []geom.Point{{X: 50, Y: 50}, {X: 150, Y: 50}, {X: 250, Y: 50}}

		c.observe(ctx, playing, won)

		assert.Equal(t, 3*effects.DefaultSettings().Count, c.fx.Len())
		for _, p := range c.fx.Particles() {
			assert.Equal(t, red.Color, p.Color)
		}
		assert.Equal(t, 1, api.calls)
		assert.Equal(t, api.score, c.tally)
	})

	t.Run("tie bursts white from the middle", func(t *testing.T) {
		c := newClient(t, "localhost:0", &stubAPI{})
		tie := playing
		tie.State = domain.Tie

		c.observe(ctx, playing, tie)

		require.Equal(t, effects.DefaultSettings().Count, c.fx.Len())
		for _, p := range c.fx.Particles() {
			assert.Equal(t, domain.White, p.Color)
			assert.Equal(t, geom.Point{X: 150, Y: 150}, p.Pos)
		}

		c.observe(ctx, tie, playing)
		assert.Zero(t, c.fx.Len())
	})
}
