package repository

import (
	"context"
	"time"

	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	const q = `
		INSERT INTO notification_jobs (kind, topic, payload, status, run_at)
		VALUES ($1, $2, $3, 'queued', $4)`
	if _, err := r.db.Exec(ctx, q, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
