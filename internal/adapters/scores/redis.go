package scores

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	scoreKeyPrefix = "score:"
	tiesField      = "ties"
	winFieldPrefix = "win:"
	scoreTTL       = 24 * time.Hour
)

type redisRepository struct {
	client *redis.Client
}

// NewRedis stores each session's tally in a hash that expires a day after
// its last update.
func NewRedis(client *redis.Client) domain.ScoreRepository {
	return &redisRepository{client: client}
}

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WithMessagef(err, "ping redis at '%s'", addr)
	}
	return client, nil
}

func scoreKey(sessionID string) string {
	return scoreKeyPrefix + sessionID
}

func (r *redisRepository) Record(ctx context.Context, sessionID string, outcome domain.Outcome) error {
	var field string
	switch outcome.State {
	case domain.Tie:
		field = tiesField
	case domain.Win:
		field = winFieldPrefix + strconv.Itoa(outcome.Winner)
	default:
		return errors.Errorf("outcome in state '%s' is not a finished round", outcome.State)
	}
	key := scoreKey(sessionID)
	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, field, 1)
	pipe.Expire(ctx, key, scoreTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WithMessagef(err, "record outcome for session '%s'", sessionID)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, sessionID string) (domain.Score, error) {
	fields, err := r.client.HGetAll(ctx, scoreKey(sessionID)).Result()
	if err != nil {
		return domain.Score{}, errors.WithMessagef(err, "get score for session '%s'", sessionID)
	}
	if len(fields) == 0 {
		return domain.Score{}, domain.ErrScoreNotFound
	}
	score := domain.Score{SessionID: sessionID}
	for field, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Score{}, errors.WithMessagef(err, "parse field '%s'", field)
		}
		if field == tiesField {
			score.Ties = n
			continue
		}
		rest, ok := strings.CutPrefix(field, winFieldPrefix)
		if !ok {
			return domain.Score{}, errors.Errorf("unexpected score field '%s'", field)
		}
		seat, err := strconv.Atoi(rest)
		if err != nil || seat < 0 || seat >= len(score.Wins) {
			return domain.Score{}, errors.Errorf("unexpected score field '%s'", field)
		}
		score.Wins[seat] = n
	}
	return score, nil
}
