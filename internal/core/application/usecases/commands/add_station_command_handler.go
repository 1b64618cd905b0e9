package commands

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/station"
)

// AddStationCommandHandler adds a station to the registry while every station row is locked.
type AddStationCommandHandler struct {
	uowFactory StationUoWFactory
}

func NewAddStationCommandHandler(uowFactory StationUoWFactory) AddStationCommandHandler {
	return AddStationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AddStationCommandHandler) Handle(ctx context.Context, command AddStationCommand) (*station.Station, error) {
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

	stageOrder := registry.NextStageOrder()
	if command.StageOrder() != nil {
		stageOrder = *command.StageOrder()
	}

	s, err := station.NewStation(kernel.NewUUID(), command.Code(), command.Name(), command.Kind(), stageOrder)
	if err != nil {
		return nil, err
	}

	if err = registry.Add(s); err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
