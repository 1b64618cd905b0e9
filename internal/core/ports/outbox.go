package ports

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
)

// OutboxMessage is a stored integration event waiting to be published.
type OutboxMessage struct {
	ID          kernel.UUID
	AggregateID kernel.UUID
	Name        string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges stored integration events. Events are written by
// the unit of work on commit.
type OutboxRepository interface {
	// LockUnprocessed returns up to limit unpublished messages, oldest first, skipping rows
	// another publisher has locked.
	LockUnprocessed(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// MessageBus delivers integration events to subscribers outside the service.
type MessageBus interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
