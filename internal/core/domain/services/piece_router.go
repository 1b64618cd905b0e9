package services

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"
)

// PieceRouter advances pieces strictly in pipeline order: a piece can only be passed at the
// station it currently waits at, and goes to the next active station or becomes ready after
// the last one.
type PieceRouter struct{}

func NewPieceRouter() PieceRouter {
	return PieceRouter{}
}

// Pass records the pass and returns the station the piece moved to, nil when it is ready.
func (r PieceRouter) Pass(
	p *piece.Piece,
	pipeline station.Pipeline,
	at kernel.UUID,
	userID, notes string,
	now time.Time,
) (*station.Station, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	next, _, err := pipeline.Next(at)
	if err != nil {
		return nil, err
	}

	var nextID *kernel.UUID
	if next != nil {
		id := next.ID()
		nextID = &id
	}

	if err = p.Pass(at, nextID, userID, notes, now); err != nil {
		return nil, err
	}

	return next, nil
}
