package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdateStationCommandIsNotConstructed = errors.New(
	"UpdateStationCommand must be created via NewUpdateStationCommand constructor",
)

// UpdateStationCommand renames a station and/or switches it on or off. Nil fields are left
// unchanged.
type UpdateStationCommand struct { //nolint:recvcheck //using for validation
	stationID kernel.UUID
	name      *string
	active    *bool

	guard guard.ConstructorGuard
}

func NewUpdateStationCommand(stationID kernel.UUID, name *string, active *bool) (UpdateStationCommand, error) {
	if err := validateID("station id", stationID); err != nil {
		return UpdateStationCommand{}, err
	}
	if name == nil && active == nil {
		return UpdateStationCommand{}, errs.NewValueIsRequiredError("name or active")
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return UpdateStationCommand{}, errs.NewValueIsRequiredError("name")
		}
		name = &trimmed
	}

	return UpdateStationCommand{
		stationID: stationID,
		name:      name,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateStationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStationCommandIsNotConstructed)
}

func (c UpdateStationCommand) StationID() kernel.UUID {
	return c.stationID
}

func (c UpdateStationCommand) Name() *string {
	return c.name
}

func (c UpdateStationCommand) Active() *bool {
	return c.active
}
