//go:build e2e

package abuse_test

import (
	"context"
	"testing"
	"time"

	"ticket-allocator/internal/infra/abuse"
	"ticket-allocator/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestRedisDetector(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	hasher, err := abuse.NewIPHasher("secret")
	require.NoError(t, err)

	t.Run("sliding window shared through redis", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now().UTC())
		first := abuse.NewRedisDetector(rdb, hasher, clk, 2, time.Hour)
		second := abuse.NewRedisDetector(rdb, hasher, clk, 2, time.Hour)
		catID := uuid.New()

		for _, d := range []*abuse.RedisDetector{first, second} {
			v, err := d.Observe(ctx, catID, "198.51.100.1")
			require.NoError(t, err)
			assert.False(t, v.Flagged)
			clk.Add(time.Second)
		}

		v, err := first.Observe(ctx, catID, "198.51.100.1")
		require.NoError(t, err)
		assert.Equal(t, 3, v.Count)
		assert.True(t, v.Flagged)
	})

	t.Run("old joins fall out of the window", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now().UTC())
		d := abuse.NewRedisDetector(rdb, hasher, clk, 1, time.Minute)
		catID := uuid.New()

		_, err := d.Observe(ctx, catID, "198.51.100.9")
		require.NoError(t, err)
		clk.Add(2 * time.Minute)
		v, err := d.Observe(ctx, catID, "198.51.100.9")

		require.NoError(t, err)
		assert.Equal(t, 1, v.Count)
		assert.False(t, v.Flagged)
	})
}
