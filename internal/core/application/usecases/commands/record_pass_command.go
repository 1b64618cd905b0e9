package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrRecordPassCommandIsNotConstructed = errors.New(
		"RecordPassCommand must be created via NewRecordPassCommand constructor",
	)
	ErrUserIsRequired = errs.NewValueIsRequiredError("user id")
)

// RecordPassCommand reports that a piece cleared a station.
type RecordPassCommand struct { //nolint:recvcheck //using for validation
	pieceID   kernel.UUID
	stationID kernel.UUID
	userID    string
	notes     string

	guard guard.ConstructorGuard
}

func NewRecordPassCommand(pieceID, stationID kernel.UUID, userID, notes string) (RecordPassCommand, error) {
	cmd := RecordPassCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("piece id", pieceID),
		validateID("station id", stationID),
		cmd.setUserID(userID),
	); err != nil {
		return RecordPassCommand{}, err
	}

	cmd.pieceID, cmd.stationID = pieceID, stationID
	return cmd, nil
}

func (c RecordPassCommand) Validate() error {
	return c.guard.Validate(ErrRecordPassCommandIsNotConstructed)
}

func (c RecordPassCommand) PieceID() kernel.UUID {
	return c.pieceID
}

func (c RecordPassCommand) StationID() kernel.UUID {
	return c.stationID
}

func (c RecordPassCommand) UserID() string {
	return c.userID
}

func (c RecordPassCommand) Notes() string {
	return c.notes
}

func (c *RecordPassCommand) setUserID(userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrUserIsRequired
	}
	c.userID = userID
	return nil
}

func validateID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
