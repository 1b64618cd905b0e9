package commands

import (
	"context"
	"fmt"

	"production/internal/core/domain/model/station"
	"production/internal/pkg/errs"
)

// UpdateStationCommandHandler applies rename, activation and deactivation. A station with
// queued pieces cannot be deactivated: they would be stranded outside the pipeline.
type UpdateStationCommandHandler struct {
	uowFactory StationUoWFactory
}

func NewUpdateStationCommandHandler(uowFactory StationUoWFactory) UpdateStationCommandHandler {
	return UpdateStationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateStationCommandHandler) Handle(ctx context.Context, command UpdateStationCommand) (*station.Station, error) {
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

	s, err := registry.Get(command.StationID())
	if err != nil {
		return nil, err
	}

	if name := command.Name(); name != nil {
		if err = s.Rename(*name); err != nil {
			return nil, err
		}
	}

	if active := command.Active(); active != nil {
		if *active {
			_, err = registry.Activate(s.ID())
		} else {
			err = h.deactivate(ctx, uow, registry, s)
		}
		if err != nil {
			return nil, err
		}
	}

	if err = repo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (h UpdateStationCommandHandler) deactivate(
	ctx context.Context,
	uow StationUoW,
	registry *station.Registry,
	s *station.Station,
) error {
	if !s.IsActive() {
		return nil
	}

	queued, err := uow.PieceRepository().CountQueuedAt(ctx, s.ID())
	if err != nil {
		return err
	}
	if queued > 0 {
		return errs.NewConflictError("station "+s.Code(), fmt.Sprintf("%d pieces are still queued", queued))
	}

	_, err = registry.Deactivate(s.ID())
	return err
}
