package webapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"active_matches":3}`))
	})
	mux.HandleFunc("/scores/known", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"session_id":"known","wins":[2,1],"ties":4}`))
	})
	mux.HandleFunc("/scores/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	repo := New()
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		resp, err := repo.HealthCheck(ctx, ts.URL)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ActiveMatches)
	})

	t.Run("scores", func(t *testing.T) {
		score, err := repo.Scores(ctx, ts.URL, "known")
		require.NoError(t, err)
		assert.Equal(t, domain.Score{SessionID: "known", Wins: [2]int{2, 1}, Ties: 4}, score)
	})

	t.Run("missing scores", func(t *testing.T) {
		_, err := repo.Scores(ctx, ts.URL, "unknown")
		require.ErrorIs(t, err, domain.ErrScoreNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := repo.Scores(ctx, ts.URL, "broken")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrScoreNotFound)
	})
}
