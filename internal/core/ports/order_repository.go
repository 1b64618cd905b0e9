package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their lines.
type OrderRepository interface {
	// Add stores a new order and its lines. A duplicate order number is a conflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores the mutable part of an order, its status.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and locks its row. Activation and delivery of one
	// order are serialized on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumberForUpdate is GetForUpdate by the human order number.
	GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error)

	ExistsByNumber(ctx context.Context, number string) (bool, error)
}
