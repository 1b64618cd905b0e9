package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrListBrokenPiecesQueryIsNotConstructed = errors.New(
	"ListBrokenPiecesQuery must be created via NewListBrokenPiecesQuery constructor",
)

// ListBrokenPiecesQuery lists the broken pieces still awaiting a replacement.
type ListBrokenPiecesQuery struct {
	guard guard.ConstructorGuard
}

func NewListBrokenPiecesQuery() ListBrokenPiecesQuery {
	return ListBrokenPiecesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListBrokenPiecesQuery) Validate() error {
	return q.guard.Validate(ErrListBrokenPiecesQueryIsNotConstructed)
}

type BrokenPieceView struct {
	PieceID     kernel.UUID
	Code        string
	OrderID     kernel.UUID
	OrderNumber string
	Customer    string
	LineCode    string
	Size        string
	Type        string
	StationCode string
	Reason      string
	BrokenBy    string
	BrokenAt    time.Time
}
