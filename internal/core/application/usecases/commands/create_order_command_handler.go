package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

// CreateOrderCommandHandler stores a new Draft order with its lines.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the identifier of the new order. A taken order number is a conflict.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	lines := make([]*order.Line, 0, len(command.Lines()))
	for _, in := range command.Lines() {
		l, err := order.NewLine(kernel.NewUUID(), in.Code, in.Qty, in.Size, in.Type, in.Notes)
		if err != nil {
			return kernel.UUID{}, err
		}
		lines = append(lines, l)
	}

	o, err := order.NewOrder(
		kernel.NewUUID(), command.Number(), command.Customer(), command.DeliveryDate(), lines, time.Now().UTC(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	exists, err := repo.ExistsByNumber(ctx, o.Number())
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, errs.NewConflictError("order "+o.Number(), "order number is already in use")
	}

	if err = repo.Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
