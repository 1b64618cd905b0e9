package commands

import (
	"errors"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRebuildPieceStateCommandIsNotConstructed = errors.New(
	"RebuildPieceStateCommand must be created via NewRebuildPieceStateCommand constructor",
)

// RebuildPieceStateCommand folds the event log of every piece and repairs cached status and
// station where they drifted. Pieces are processed batchSize at a time, one transaction per
// batch.
type RebuildPieceStateCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRebuildPieceStateCommand(batchSize int) (RebuildPieceStateCommand, error) {
	if batchSize < 1 {
		return RebuildPieceStateCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return RebuildPieceStateCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RebuildPieceStateCommand) Validate() error {
	return c.guard.Validate(ErrRebuildPieceStateCommandIsNotConstructed)
}

func (c RebuildPieceStateCommand) BatchSize() int {
	return c.batchSize
}
