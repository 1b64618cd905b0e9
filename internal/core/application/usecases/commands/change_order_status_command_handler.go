package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"
)

// ChangeOrderStatusCommandHandler applies pause, resume and cancel to an order.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the order status after the transition.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) (order.Status, error) {
	if err := command.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	now := time.Now().UTC()
	switch command.Action() {
	case PauseOrder:
		_, err = o.Pause(now)
	case ResumeOrder:
		_, err = o.Resume(now)
	case CancelOrder:
		_, err = o.Cancel(now)
	}
	if err != nil {
		return order.Unknown, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return o.Status(), nil
}
