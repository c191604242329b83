package commands

import (
	"context"
	"log/slog"
	"time"

	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
)

type DispatchResult struct {
	Sent   int
	Failed int
}

// NotificationDispatcher drains the notification outbox into the publisher.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context) (*DispatchResult, error)
}

type notificationDispatcherImpl struct {
	outbox    shared.Outbox
	publisher NotificationPublisher
	clock     clock.Clock
	batchSize int
}

func NewNotificationDispatcher(outbox shared.Outbox, publisher NotificationPublisher, clock clock.Clock, batchSize int) NotificationDispatcher {
	return &notificationDispatcherImpl{
		outbox:    outbox,
		publisher: publisher,
		clock:     clock,
		batchSize: max(batchSize, 1),
	}
}

func (d *notificationDispatcherImpl) Dispatch(ctx context.Context) (*DispatchResult, error) {
	jobs, err := d.outbox.ClaimPending(ctx, d.clock.Now(), d.batchSize)
	if err != nil {
		return nil, errs.Wrap(err, "failed to claim notification jobs")
	}

	result := &DispatchResult{}
	for _, job := range jobs {
		if err := d.publish(ctx, job); err != nil {
			retryAt := d.clock.Now().Add(redeliveryDelay(job.Attempts))
			slog.Warn("notification publish failed",
				"job_id", job.ID,
				"topic", job.Topic,
				"attempts", job.Attempts+1,
				"retry_at", retryAt,
				"error", err.Error())
			if markErr := d.outbox.MarkFailed(ctx, job.ID, retryAt, err.Error()); markErr != nil {
				return result, errs.Wrap(markErr, "failed to mark notification job failed")
			}
			result.Failed++
			continue
		}
		if err := d.outbox.MarkSent(ctx, job.ID, d.clock.Now()); err != nil {
			return result, errs.Wrap(err, "failed to mark notification job sent")
		}
		result.Sent++
	}

	if result.Sent+result.Failed > 0 {
		slog.Info("notifications dispatched", "sent", result.Sent, "failed", result.Failed)
	}
	return result, nil
}

func (d *notificationDispatcherImpl) publish(ctx context.Context, job shared.NotificationJob) error {
	b := backoff.WithContext(backoff.WithMaxRetries(newRetryBackOff(), 2), ctx)
	return backoff.Retry(func() error {
		return d.publisher.Publish(ctx, job.Topic, job.Payload)
	}, b)
}

// redeliveryDelay doubles from 10s and caps at 10 minutes.
func redeliveryDelay(attempts int) time.Duration {
	delay := 10 * time.Second
	for range attempts {
		delay *= 2
		if delay >= 10*time.Minute {
			return 10 * time.Minute
		}
	}
	return delay
}
