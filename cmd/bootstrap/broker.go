package bootstrap

import (
	"context"
	"log/slog"

	"ticket-allocator/internal/infra/notify"
	"ticket-allocator/internal/pkg/config"
	"ticket-allocator/internal/usecase/commands"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewNotificationPublisher,
	),
)

// NewNotificationPublisher publishes to RabbitMQ when RABBITMQ_URL is set and
// to the log otherwise.
func NewNotificationPublisher(lc fx.Lifecycle, cfg config.Config) (commands.NotificationPublisher, error) {
	if cfg.Broker.URL == "" {
		slog.Info("RABBITMQ_URL not set, notifications are written to the log")
		return notify.NewLogPublisher(), nil
	}

	publisher, err := notify.NewAMQPPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
