package commands

import (
	"context"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

// PublishOutboxCommandHandler sends stored integration events to the message bus in the
// order they occurred. Publishing stops at the first failure; what was sent before it is
// marked processed, the rest is retried on the next run.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	bus        ports.MessageBus
}

func NewPublishOutboxCommandHandler(uowFactory OutboxUoWFactory, bus ports.MessageBus) PublishOutboxCommandHandler {
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		bus:        bus,
	}
}

// Handle returns the number of messages published.
func (h PublishOutboxCommandHandler) Handle(ctx context.Context, command PublishOutboxCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()

	messages, err := repo.LockUnprocessed(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}

	published := make([]kernel.UUID, 0, len(messages))
	var publishErr error
	for _, msg := range messages {
		if publishErr = h.bus.Publish(ctx, msg); publishErr != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", msg.Name, msg.ID, publishErr)
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err = repo.MarkProcessed(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
