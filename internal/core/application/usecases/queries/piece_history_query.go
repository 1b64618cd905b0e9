package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrPieceHistoryQueryIsNotConstructed = errors.New(
	"PieceHistoryQuery must be created via NewPieceHistoryQuery constructor",
)

type PieceHistoryQuery struct {
	pieceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPieceHistoryQuery(pieceID kernel.UUID) (PieceHistoryQuery, error) {
	if err := pieceID.Validate(); err != nil {
		return PieceHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("piece_id", err)
	}
	return PieceHistoryQuery{pieceID: pieceID, guard: guard.NewConstructorGuard()}, nil
}

func (q PieceHistoryQuery) Validate() error {
	return q.guard.Validate(ErrPieceHistoryQueryIsNotConstructed)
}

func (q PieceHistoryQuery) PieceID() kernel.UUID {
	return q.pieceID
}

// PieceHistory is the event log of a piece next to its cached state. Consistent is false
// when folding the log gives a different status or station than the cache holds.
type PieceHistory struct {
	PieceID        kernel.UUID
	Code           string
	Status         string
	CurrentStation *kernel.UUID
	Folded         FoldedState
	Consistent     bool
	Events         []PieceEventView
}

type FoldedState struct {
	Status         string
	CurrentStation *kernel.UUID
}

type PieceEventView struct {
	ID              kernel.UUID
	Type            string
	StationID       *kernel.UUID
	StationCode     string
	NextStationID   *kernel.UUID
	NextStationCode string
	UserID          string
	Notes           string
	At              time.Time
}
