// Package suite starts throwaway infrastructure for integration tests.
package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const (
	redisPort       = "6379/tcp"
	maxWaitDuration = 120 * time.Second
)

type options struct {
	repository string
	tag        string
	expire     uint
}

type Option func(*options)

// WithImage picks the redis image, e.g. to pin the version production runs.
func WithImage(repository, tag string) Option {
	return func(o *options) {
		o.repository = repository
		o.tag = tag
	}
}

// WithExpire bounds the container lifetime in seconds in case cleanup never
// runs.
func WithExpire(seconds uint) Option {
	return func(o *options) {
		o.expire = seconds
	}
}

type Suite struct {
	*testing.T
	Logger *zap.Logger
	Redis  *redis.Client
}

// New runs a redis container for the test and hands back a flushed client.
// Tests are skipped when no docker daemon answers or when running with
// -short.
func New(t *testing.T, opts ...Option) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	o := options{repository: "redis", tag: "7-alpine", expire: 120}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	pool.MaxWait = maxWaitDuration

	resource := startRedis(t, pool, o)
	client := connect(ctx, t, pool, resource)
	t.Cleanup(func() {
		_ = client.Close()
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge %s:%s: %v", o.repository, o.tag, err)
		}
	})

	return ctx, &Suite{
		T:      t,
		Logger: zaptest.NewLogger(t),
		Redis:  client,
	}
}

func startRedis(t *testing.T, pool *dockertest.Pool, o options) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: o.repository,
		Tag:        o.tag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start %s:%s: %v", o.repository, o.tag, err)
	}
	// never returns error
	_ = resource.Expire(o.expire)
	return resource
}

func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *redis.Client {
	t.Helper()

	var client *redis.Client
	err := pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})
		return client.Ping(ctx).Err()
	})
	if err == nil {
		err = client.FlushDB(ctx).Err()
	}
	if err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to redis: %v", err)
	}
	return client
}

// ScoreKeys lists the score hashes currently stored.
func (s *Suite) ScoreKeys(ctx context.Context) []string {
	s.Helper()

	keys, err := s.Redis.Keys(ctx, "score:*").Result()
	if err != nil {
		s.Fatalf("list score keys: %v", err)
	}
	return keys
}

// TTL is the time left before key expires; negative when it has none.
func (s *Suite) TTL(ctx context.Context, key string) time.Duration {
	s.Helper()

	ttl, err := s.Redis.TTL(ctx, key).Result()
	if err != nil {
		s.Fatalf("ttl of '%s': %v", key, err)
	}
	return ttl
}
