package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Aggregates saved through its repositories
// are tracked, and their domain events are written to the outbox right before Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit stores the outbox messages of the tracked aggregates and commits.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit is a no-op error.
	Rollback(ctx context.Context) error

	StationRepository() StationRepository
	OrderRepository() OrderRepository
	PieceRepository() PieceRepository
	DeliveryNoteRepository() DeliveryNoteRepository
	OutboxRepository() OutboxRepository
}
