//go:build unit

package abuse_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"ticket-allocator/internal/infra/abuse"
	"ticket-allocator/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestIPHasher(t *testing.T) {
	h, err := abuse.NewIPHasher("secret")
	require.NoError(t, err)

	t.Run("stable keyed digest", func(t *testing.T) {
		key := h.Key("203.0.113.7")
		assert.Len(t, key, 32)
		assert.Equal(t, key, h.Key("203.0.113.7"))
		assert.NotEqual(t, key, h.Key("203.0.113.8"))
		assert.NotContains(t, key, "203")
	})

	t.Run("depends on the key", func(t *testing.T) {
		other, err := abuse.NewIPHasher("another")
		require.NoError(t, err)
		assert.NotEqual(t, h.Key("203.0.113.7"), other.Key("203.0.113.7"))
	})

	t.Run("empty ip has no key", func(t *testing.T) {
		assert.Empty(t, h.Key(""))
	})

	t.Run("rejects oversized keys", func(t *testing.T) {
		_, err := abuse.NewIPHasher(strings.Repeat("k", 65))
		assert.Error(t, err)
	})
}

func TestMemoryDetector(t *testing.T) {
	ctx := context.Background()
	hasher, err := abuse.NewIPHasher("secret")
	require.NoError(t, err)

	t.Run("flags joins above the threshold", func(t *testing.T) {
		d := abuse.NewMemoryDetector(hasher, clock.NewMockClock(now), 2, time.Hour)
		catID := uuid.New()

		var flagged []bool
		for range 4 {
			v, err := d.Observe(ctx, catID, "198.51.100.1")
			require.NoError(t, err)
			flagged = append(flagged, v.Flagged)
		}
		assert.Equal(t, []bool{false, false, true, true}, flagged)
	})

	t.Run("counts per category and ip", func(t *testing.T) {
		d := abuse.NewMemoryDetector(hasher, clock.NewMockClock(now), 1, time.Hour)
		catID := uuid.New()

		_, err := d.Observe(ctx, catID, "198.51.100.1")
		require.NoError(t, err)
		otherIP, err := d.Observe(ctx, catID, "198.51.100.2")
		require.NoError(t, err)
		otherCat, err := d.Observe(ctx, uuid.New(), "198.51.100.1")
		require.NoError(t, err)

		assert.Equal(t, 1, otherIP.Count)
		assert.Equal(t, 1, otherCat.Count)
		assert.False(t, otherIP.Flagged)
		assert.False(t, otherCat.Flagged)
	})

	t.Run("forgets joins outside the window", func(t *testing.T) {
		clk := clock.NewMockClock(now)
		d := abuse.NewMemoryDetector(hasher, clk, 1, time.Hour)
		catID := uuid.New()

		_, err := d.Observe(ctx, catID, "198.51.100.1")
		require.NoError(t, err)
		clk.Add(time.Hour)
		v, err := d.Observe(ctx, catID, "198.51.100.1")
		require.NoError(t, err)

		assert.Equal(t, 1, v.Count)
		assert.False(t, v.Flagged)
	})

	t.Run("drops keys whose window has emptied", func(t *testing.T) {
		clk := clock.NewMockClock(now)
		d := abuse.NewMemoryDetector(hasher, clk, 1, time.Hour)
		catID := uuid.New()

		for i := range 50 {
			_, err := d.Observe(ctx, catID, fmt.Sprintf("198.51.100.%d", i))
			require.NoError(t, err)
		}
		require.Equal(t, 50, d.TrackedKeys())

		clk.Add(time.Hour)
		_, err := d.Observe(ctx, catID, "203.0.113.1")
		require.NoError(t, err)

		assert.Equal(t, 1, d.TrackedKeys())
	})

	t.Run("missing ip is never flagged", func(t *testing.T) {
		d := abuse.NewMemoryDetector(hasher, clock.NewMockClock(now), 0, time.Hour)

		v, err := d.Observe(ctx, uuid.New(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, v.Count)
		assert.Empty(t, v.IPKey)
	})
}

func TestRedisDetectorUnavailable(t *testing.T) {
	hasher, err := abuse.NewIPHasher("secret")
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	d := abuse.NewRedisDetector(rdb, hasher, clock.NewMockClock(now), 2, time.Hour)

	v, err := d.Observe(context.Background(), uuid.New(), "198.51.100.1")

	require.Error(t, err)
	assert.Equal(t, hasher.Key("198.51.100.1"), v.IPKey)
	assert.False(t, v.Flagged)
}
