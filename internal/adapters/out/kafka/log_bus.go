package kafka

import (
	"context"
	"log/slog"

	"production/internal/core/ports"
)

// LogBus writes outbox messages to the log instead of a broker. It is used when no Kafka
// host is configured, so the outbox still drains in local setups.
type LogBus struct {
	logger *slog.Logger
}

var _ ports.MessageBus = LogBus{}

func NewLogBus(logger *slog.Logger) LogBus {
	return LogBus{logger: logger.With("component", "log_message_bus")}
}

func (b LogBus) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	b.logger.InfoContext(ctx, "Integration event",
		"event", msg.Name,
		"id", msg.ID.String(),
		"aggregate_id", msg.AggregateID.String(),
		"payload", string(msg.Payload),
	)
	return nil
}
