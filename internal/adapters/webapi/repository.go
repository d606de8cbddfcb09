package webapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
)

const (
	clientTimeout       = 5 * time.Second
	scoresEndpoint      = "/scores/"
	healthCheckEndpoint = "/health"
)

type repository struct {
	cli *http.Client
}

func New() repository {
	return repository{
		cli: &http.Client{Timeout: clientTimeout},
	}
}

func (r repository) HealthCheck(ctx context.Context, addr string) (*domain.HealthCheckResponse, error) {
	result := new(domain.HealthCheckResponse)
	if err := r.getJson(ctx, addr+healthCheckEndpoint, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Scores fetches a session's tally; domain.ErrScoreNotFound when the server
// has none.
func (r repository) Scores(ctx context.Context, addr string, sessionID string) (domain.Score, error) {
	var score domain.Score
	if err := r.getJson(ctx, addr+scoresEndpoint+url.PathEscape(sessionID), &score); err != nil {
		return domain.Score{}, err
	}
	return score, nil
}

func (r repository) getJson(ctx context.Context, endpoint string, v any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WithMessage(err, "new get request")
	}
	resp, err := r.cli.Do(request)
	if err != nil {
		return errors.WithMessagef(err, "call http endpoint '%s'", endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return errors.WithMessagef(domain.ErrScoreNotFound, "endpoint '%s'", endpoint)
	default:
		return errors.Errorf("unexpected response status '%s'", resp.Status)
	}
	if err := jsoniter.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.WithMessage(err, "decode json response body")
	}
	return nil
}
