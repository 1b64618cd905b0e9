package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/station"
	"production/internal/core/domain/services"
)

type ActivateOrderResult struct {
	CreatedPieces int
	TouchedLines  int
	StatusUpdated bool
}

// ActivateOrderCommandHandler runs the Activator inside one transaction. The order row is
// locked first, so concurrent activations of one order count existing pieces one after the
// other and never exceed a line's quantity together.
type ActivateOrderCommandHandler struct {
	uowFactory PieceUoWFactory
}

func NewActivateOrderCommandHandler(uowFactory PieceUoWFactory) ActivateOrderCommandHandler {
	return ActivateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the pieces or nothing at all.
func (h ActivateOrderCommandHandler) Handle(ctx context.Context, command ActivateOrderCommand) (ActivateOrderResult, error) {
	if err := command.Validate(); err != nil {
		return ActivateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ActivateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pieceRepo := uow.PieceRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return ActivateOrderResult{}, err
	}

	stations, err := uow.StationRepository().GetAll(ctx)
	if err != nil {
		return ActivateOrderResult{}, err
	}

	already, err := pieceRepo.CountOriginalByLine(ctx, o.ID())
	if err != nil {
		return ActivateOrderResult{}, err
	}

	planned, err := services.NewActivator().Activate(
		o, command.Requests(), already, station.NewPipeline(stations), time.Now().UTC(),
	)
	if err != nil {
		return ActivateOrderResult{}, err
	}

	for _, p := range planned.Pieces {
		if err = pieceRepo.Add(ctx, p); err != nil {
			return ActivateOrderResult{}, err
		}
	}

	if planned.StatusUpdated {
		if err = orderRepo.Update(ctx, o); err != nil {
			return ActivateOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return ActivateOrderResult{}, err
	}

	return ActivateOrderResult{
		CreatedPieces: len(planned.Pieces),
		TouchedLines:  planned.TouchedLines,
		StatusUpdated: planned.StatusUpdated,
	}, nil
}
