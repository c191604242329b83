package abuse

import (
	"context"
	"fmt"
	"time"

	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript drops members older than the window, records this join
// and returns how many joins the IP made inside the window.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])
	local member = ARGV[3]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now_ms - window_ms)
	redis.call('ZADD', key, now_ms, member)
	redis.call('PEXPIRE', key, window_ms)
	return redis.call('ZCARD', key)
`)

// RedisDetector counts joins per (category, hashed IP) in a sliding window
// shared by every API instance.
type RedisDetector struct {
	rdb       *redis.Client
	hasher    *IPHasher
	clock     clock.Clock
	threshold int
	window    time.Duration
	prefix    string
}

func NewRedisDetector(rdb *redis.Client, hasher *IPHasher, clk clock.Clock, threshold int, window time.Duration) *RedisDetector {
	return &RedisDetector{
		rdb:       rdb,
		hasher:    hasher,
		clock:     clk,
		threshold: threshold,
		window:    window,
		prefix:    "queue:joins",
	}
}

// Observe returns the hashed key even when Redis fails so the entry still
// records which client it came from.
func (d *RedisDetector) Observe(ctx context.Context, categoryID uuid.UUID, clientIP string) (commands.AbuseVerdict, error) {
	verdict := commands.AbuseVerdict{IPKey: d.hasher.Key(clientIP)}
	if verdict.IPKey == "" {
		return verdict, nil
	}

	now := d.clock.Now()
	key := fmt.Sprintf("%s:%s:%s", d.prefix, categoryID, verdict.IPKey)
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	count, err := slidingWindowScript.Run(ctx, d.rdb, []string{key},
		now.UnixMilli(), d.window.Milliseconds(), member).Int()
	if err != nil {
		return verdict, errs.Wrap(err, "failed to count joins per ip")
	}

	verdict.Count = count
	verdict.Flagged = d.threshold > 0 && count > d.threshold
	return verdict, nil
}
