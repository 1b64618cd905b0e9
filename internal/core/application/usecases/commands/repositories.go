// Package commands contains the write side of the production engine. Every command is
// validated in its constructor, and its handler runs inside one unit of work that is rolled
// back on every exit path except a successful Commit.
package commands

import (
	"context"

	"production/internal/core/ports"
)

// Narrowed unit of work interfaces: each handler depends only on the repositories it uses.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	StationRepoFactory interface {
		StationRepository() ports.StationRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PieceRepoFactory interface {
		PieceRepository() ports.PieceRepository
	}

	DeliveryNoteRepoFactory interface {
		DeliveryNoteRepository() ports.DeliveryNoteRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW is used by order intake and lifecycle commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StationUoW is used by registry administration. Deactivation checks the station queue,
	// hence the piece repository.
	StationUoW interface {
		TxManager
		StationRepoFactory
		PieceRepoFactory
	}

	StationUoWFactory interface {
		Create() StationUoW
	}

	// PieceUoW is used by the commands that move pieces along the pipeline: activation,
	// pass, breakage and replacement.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   p, err := uow.PieceRepository().GetForUpdate(ctx, id)
	//   // ... mutate p
	//   err = uow.PieceRepository().Update(ctx, p)
	//
	//   return uow.Commit(ctx)
	PieceUoW interface {
		TxManager
		StationRepoFactory
		OrderRepoFactory
		PieceRepoFactory
	}

	PieceUoWFactory interface {
		Create() PieceUoW
	}

	// DeliveryUoW is used by delivery confirmation.
	DeliveryUoW interface {
		TxManager
		StationRepoFactory
		OrderRepoFactory
		PieceRepoFactory
		DeliveryNoteRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// OutboxUoW is used by the outbox publisher.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
