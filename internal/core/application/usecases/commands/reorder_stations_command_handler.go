package commands

import (
	"context"

	"production/internal/core/domain/model/station"
)

// ReorderStationsCommandHandler renumbers every production station in one transaction with
// all station rows locked, so no caller ever sees two active stations on one stage order.
type ReorderStationsCommandHandler struct {
	uowFactory StationUoWFactory
}

func NewReorderStationsCommandHandler(uowFactory StationUoWFactory) ReorderStationsCommandHandler {
	return ReorderStationsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the new pipeline.
func (h ReorderStationsCommandHandler) Handle(ctx context.Context, command ReorderStationsCommand) ([]*station.Station, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StationRepository()

	all, err := repo.LockAll(ctx)
	if err != nil {
		return nil, err
	}
	registry := station.NewRegistry(all)

	changed, err := registry.Reorder(command.StationIDs())
	if err != nil {
		return nil, err
	}

	for _, s := range changed {
		if err = repo.Update(ctx, s); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return registry.Pipeline().Stations(), nil
}
