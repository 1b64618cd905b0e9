package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"
	"production/internal/core/domain/services"
)

type RecordPassResult struct {
	Status      piece.Status
	NextStation *kernel.UUID
}

// RecordPassCommandHandler advances a piece one station. The piece is re-read under a row
// lock, so a pass based on a stale queue view is rejected instead of applied.
type RecordPassCommandHandler struct {
	uowFactory PieceUoWFactory
}

func NewRecordPassCommandHandler(uowFactory PieceUoWFactory) RecordPassCommandHandler {
	return RecordPassCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RecordPassCommandHandler) Handle(ctx context.Context, command RecordPassCommand) (RecordPassResult, error) {
	if err := command.Validate(); err != nil {
		return RecordPassResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecordPassResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pieceRepo := uow.PieceRepository()

	p, err := pieceRepo.GetForUpdate(ctx, command.PieceID())
	if err != nil {
		return RecordPassResult{}, err
	}

	stations, err := uow.StationRepository().GetAll(ctx)
	if err != nil {
		return RecordPassResult{}, err
	}

	next, err := services.NewPieceRouter().Pass(
		p, station.NewPipeline(stations), command.StationID(), command.UserID(), command.Notes(), time.Now().UTC(),
	)
	if err != nil {
		return RecordPassResult{}, err
	}

	if err = pieceRepo.Update(ctx, p); err != nil {
		return RecordPassResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordPassResult{}, err
	}

	result := RecordPassResult{Status: p.Status()}
	if next != nil {
		id := next.ID()
		result.NextStation = &id
	}
	return result, nil
}
