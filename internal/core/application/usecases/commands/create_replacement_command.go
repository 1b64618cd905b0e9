package commands

import (
	"errors"
	"strings"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrCreateReplacementCommandIsNotConstructed = errors.New(
		"CreateReplacementCommand must be created via NewCreateReplacementCommand constructor",
	)
	ErrPieceCodeIsRequired = errs.NewValueIsRequiredError("piece code")
)

// CreateReplacementCommand resolves the replacement request of a broken piece.
type CreateReplacementCommand struct {
	pieceCode string

	guard guard.ConstructorGuard
}

func NewCreateReplacementCommand(pieceCode string) (CreateReplacementCommand, error) {
	pieceCode = strings.TrimSpace(pieceCode)
	if pieceCode == "" {
		return CreateReplacementCommand{}, ErrPieceCodeIsRequired
	}

	return CreateReplacementCommand{
		pieceCode: pieceCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReplacementCommand) Validate() error {
	return c.guard.Validate(ErrCreateReplacementCommandIsNotConstructed)
}

func (c CreateReplacementCommand) PieceCode() string {
	return c.pieceCode
}
