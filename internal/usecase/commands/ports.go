package commands

//go:generate mockgen -source=$GOFILE -destination=../../mock/commandsmock/$GOFILE -package=commandsmock

import (
	"context"
	"time"

	"ticket-allocator/internal/pkg/config"

	"github.com/google/uuid"
)

// AbuseVerdict is the outcome of counting a join attempt against its client IP.
type AbuseVerdict struct {
	IPKey   string
	Count   int
	Flagged bool
}

type AbuseDetector interface {
	Observe(ctx context.Context, categoryID uuid.UUID, clientIP string) (AbuseVerdict, error)
}

type NotificationPublisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Policy holds the queue timeouts and limits.
type Policy struct {
	OfferTimeout    time.Duration
	PurchaseTimeout time.Duration
	MaxQueueSize    int
}

func PolicyFromConfig(cfg config.QueueConfig) Policy {
	return Policy{
		OfferTimeout:    cfg.OfferTimeout(),
		PurchaseTimeout: cfg.PurchaseTimeout(),
		MaxQueueSize:    cfg.MaxQueueSize,
	}
}
