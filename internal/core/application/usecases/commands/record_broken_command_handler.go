package commands

import (
	"context"
	"time"
)

// RecordBrokenCommandHandler marks a piece broken and opens a replacement request. The order
// status is left alone.
type RecordBrokenCommandHandler struct {
	uowFactory PieceUoWFactory
}

func NewRecordBrokenCommandHandler(uowFactory PieceUoWFactory) RecordBrokenCommandHandler {
	return RecordBrokenCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RecordBrokenCommandHandler) Handle(ctx context.Context, command RecordBrokenCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pieceRepo := uow.PieceRepository()

	p, err := pieceRepo.GetForUpdate(ctx, command.PieceID())
	if err != nil {
		return err
	}

	if _, err = uow.StationRepository().Get(ctx, command.StationID()); err != nil {
		return err
	}

	if err = p.MarkBroken(command.StationID(), command.UserID(), command.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	if err = pieceRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
