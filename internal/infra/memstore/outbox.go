package memstore

import (
	"context"
	"sort"
	"time"

	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	jobStatusQueued = "queued"
	jobStatusSent   = "sent"
	jobStatusFailed = "failed"
)

type outbox struct {
	s *Store
}

func (o *outbox) ClaimPending(_ context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	due := make([]*jobRecord, 0)
	for _, j := range o.s.jobs {
		if j.status == jobStatusQueued && !j.job.RunAt.After(now) {
			due = append(due, j)
		}
	}
	sort.SliceStable(due, func(i, k int) bool { return due[i].job.RunAt.Before(due[k].job.RunAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	out := make([]shared.NotificationJob, len(due))
	for i, j := range due {
		j.job.RunAt = now.Add(claimLease)
		j.job.Attempts++
		out[i] = j.job
	}
	return out, nil
}

func (o *outbox) MarkSent(_ context.Context, id uuid.UUID, _ time.Time) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	j := o.find(id)
	if j == nil {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	j.status = jobStatusSent
	j.lastError = ""
	return nil
}

func (o *outbox) MarkFailed(_ context.Context, id uuid.UUID, retryAt time.Time, lastErr string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	j := o.find(id)
	if j == nil {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	j.lastError = lastErr
	j.job.RunAt = retryAt
	if j.job.Attempts >= maxDeliveryAttempts {
		j.status = jobStatusFailed
	}
	return nil
}

func (o *outbox) find(id uuid.UUID) *jobRecord {
	for _, j := range o.s.jobs {
		if j.job.ID == id {
			return j
		}
	}
	return nil
}

// JobCounts reports queued, sent and failed job counts.
func (s *Store) JobCounts() (queued, sent, failed int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.jobs {
		switch j.status {
		case jobStatusQueued:
			queued++
		case jobStatusSent:
			sent++
		case jobStatusFailed:
			failed++
		}
	}
	return queued, sent, failed
}

// PendingTopics lists topics of queued jobs in creation order.
func (s *Store) PendingTopics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, j := range s.jobs {
		if j.status == jobStatusQueued {
			out = append(out, j.job.Topic)
		}
	}
	return out
}
