package repository

import (
	"context"
	"time"

	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// claimLease hides a claimed job from other dispatchers until it is marked.
	claimLease = time.Minute
	// MaxDeliveryAttempts before a job is parked as failed.
	MaxDeliveryAttempts = 5
)

type OutboxRepository struct {
	pool *pgxpool.Pool
}

func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

// ClaimPending leases due jobs with SKIP LOCKED so concurrent dispatchers
// never pick the same job.
func (r *OutboxRepository) ClaimPending(ctx context.Context, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var jobs []shared.NotificationJob
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, kind, topic, payload, run_at, attempts
			FROM notification_jobs
			WHERE status = 'queued' AND run_at <= $1
			ORDER BY run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED`, now, limit)
		if err != nil {
			return err
		}
		jobs, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.NotificationJob, error) {
			var j shared.NotificationJob
			err := row.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt, &j.Attempts)
			return j, err
		})
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(jobs))
		for i, j := range jobs {
			ids[i] = j.ID
		}
		_, err = tx.Exec(ctx, `
			UPDATE notification_jobs
			SET run_at = $2, attempts = attempts + 1, updated_at = $3
			WHERE id = ANY($1)`, ids, now.Add(claimLease), now)
		return err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	for i := range jobs {
		jobs[i].Attempts++
	}
	return jobs, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, now time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notification_jobs SET status = 'sent', last_error = NULL, updated_at = $2
		WHERE id = $1`, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, retryAt time.Time, lastErr string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notification_jobs
		SET status = CASE WHEN attempts >= $4 THEN 'failed' ELSE 'queued' END,
			run_at = $2, last_error = $3, updated_at = now()
		WHERE id = $1`, id, retryAt, lastErr, MaxDeliveryAttempts)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
