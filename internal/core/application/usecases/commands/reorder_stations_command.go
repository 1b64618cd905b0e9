package commands

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrReorderStationsCommandIsNotConstructed = errors.New(
	"ReorderStationsCommand must be created via NewReorderStationsCommand constructor",
)

// ReorderStationsCommand gives the production stations a new order, first id first.
type ReorderStationsCommand struct {
	stationIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewReorderStationsCommand(stationIDs []kernel.UUID) (ReorderStationsCommand, error) {
	if len(stationIDs) == 0 {
		return ReorderStationsCommand{}, errs.NewValueIsRequiredError("station_ids")
	}
	for i, id := range stationIDs {
		if err := validateID(fmt.Sprintf("station_ids[%d]", i), id); err != nil {
			return ReorderStationsCommand{}, err
		}
	}

	return ReorderStationsCommand{
		stationIDs: stationIDs,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReorderStationsCommand) Validate() error {
	return c.guard.Validate(ErrReorderStationsCommandIsNotConstructed)
}

func (c ReorderStationsCommand) StationIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.stationIDs))
	copy(out, c.stationIDs)
	return out
}
