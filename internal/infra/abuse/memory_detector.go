package abuse

import (
	"context"
	"sync"
	"time"

	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/usecase/commands"

	"github.com/google/uuid"
)

type windowKey struct {
	categoryID uuid.UUID
	ipKey      string
}

// MemoryDetector is the single-process fallback used when Redis is not configured.
type MemoryDetector struct {
	mu        sync.Mutex
	hasher    *IPHasher
	clock     clock.Clock
	threshold int
	window    time.Duration
	joins     map[windowKey][]time.Time
	lastPrune time.Time
}

func NewMemoryDetector(hasher *IPHasher, clk clock.Clock, threshold int, window time.Duration) *MemoryDetector {
	return &MemoryDetector{
		hasher:    hasher,
		clock:     clk,
		threshold: threshold,
		window:    window,
		joins:     make(map[windowKey][]time.Time),
	}
}

func (d *MemoryDetector) Observe(_ context.Context, categoryID uuid.UUID, clientIP string) (commands.AbuseVerdict, error) {
	verdict := commands.AbuseVerdict{IPKey: d.hasher.Key(clientIP)}
	if verdict.IPKey == "" {
		return verdict, nil
	}

	now := d.clock.Now()
	cutoff := now.Add(-d.window)
	key := windowKey{categoryID: categoryID, ipKey: verdict.IPKey}

	d.mu.Lock()
	defer d.mu.Unlock()
	if now.Sub(d.lastPrune) >= d.window {
		d.prune(cutoff)
		d.lastPrune = now
	}

	kept := d.joins[key][:0]
	for _, t := range d.joins[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, now)
	d.joins[key] = kept

	verdict.Count = len(kept)
	verdict.Flagged = d.threshold > 0 && verdict.Count > d.threshold
	return verdict, nil
}

// prune drops keys whose newest join fell out of the window.
func (d *MemoryDetector) prune(cutoff time.Time) {
	for key, times := range d.joins {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(d.joins, key)
		}
	}
}
