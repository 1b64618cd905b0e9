package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/station"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAddStationCommandIsNotConstructed = errors.New(
	"AddStationCommand must be created via NewAddStationCommand constructor",
)

// AddStationCommand registers a station. Without a stage order the station is appended
// after the last one.
type AddStationCommand struct { //nolint:recvcheck //using for validation
	code       string
	name       string
	kind       station.Kind
	stageOrder *int

	guard guard.ConstructorGuard
}

func NewAddStationCommand(code, name, kind string, stageOrder *int) (AddStationCommand, error) {
	cmd := AddStationCommand{
		code:  strings.TrimSpace(code),
		name:  strings.TrimSpace(name),
		guard: guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.code == "" {
		errList = append(errList, errs.NewValueIsRequiredError("code"))
	}
	if cmd.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	k, err := station.ParseKind(kind)
	if err != nil {
		errList = append(errList, err)
	}
	if stageOrder != nil && *stageOrder < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("stage_order", *stageOrder, 1, "unbounded"))
	}
	if err = errors.Join(errList...); err != nil {
		return AddStationCommand{}, err
	}

	cmd.kind = k
	cmd.stageOrder = stageOrder
	return cmd, nil
}

func (c AddStationCommand) Validate() error {
	return c.guard.Validate(ErrAddStationCommandIsNotConstructed)
}

func (c AddStationCommand) Code() string {
	return c.code
}

func (c AddStationCommand) Name() string {
	return c.name
}

func (c AddStationCommand) Kind() station.Kind {
	return c.kind
}

func (c AddStationCommand) StageOrder() *int {
	return c.stageOrder
}
