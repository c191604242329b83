package notify

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	slog.Info("notification event", "topic", topic, "payload", string(payload))
	return nil
}
