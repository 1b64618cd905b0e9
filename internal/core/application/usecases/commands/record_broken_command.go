package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrRecordBrokenCommandIsNotConstructed = errors.New(
	"RecordBrokenCommand must be created via NewRecordBrokenCommand constructor",
)

// RecordBrokenCommand reports that a piece broke at a station.
type RecordBrokenCommand struct { //nolint:recvcheck //using for validation
	pieceID   kernel.UUID
	stationID kernel.UUID
	userID    string
	reason    string

	guard guard.ConstructorGuard
}

func NewRecordBrokenCommand(pieceID, stationID kernel.UUID, userID, reason string) (RecordBrokenCommand, error) {
	cmd := RecordBrokenCommand{
		userID: strings.TrimSpace(userID),
		reason: strings.TrimSpace(reason),
		guard:  guard.NewConstructorGuard(),
	}

	var userErr error
	if cmd.userID == "" {
		userErr = ErrUserIsRequired
	}

	if err := errors.Join(
		validateID("piece id", pieceID),
		validateID("station id", stationID),
		userErr,
	); err != nil {
		return RecordBrokenCommand{}, err
	}

	cmd.pieceID, cmd.stationID = pieceID, stationID
	return cmd, nil
}

func (c RecordBrokenCommand) Validate() error {
	return c.guard.Validate(ErrRecordBrokenCommandIsNotConstructed)
}

func (c RecordBrokenCommand) PieceID() kernel.UUID {
	return c.pieceID
}

func (c RecordBrokenCommand) StationID() kernel.UUID {
	return c.stationID
}

func (c RecordBrokenCommand) UserID() string {
	return c.userID
}

func (c RecordBrokenCommand) Reason() string {
	return c.reason
}
