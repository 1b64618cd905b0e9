package services

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"
)

// ActivationRequest asks for Qty more pieces of a line. Requests with Go unset are ignored.
type ActivationRequest struct {
	LineID kernel.UUID
	Qty    int
	Go     bool
}

type ActivationResult struct {
	Pieces        []*piece.Piece
	TouchedLines  int
	StatusUpdated bool
}

// Activator materializes pieces for order lines.
//
// Business rules:
//   - A line never gets more pieces than its requested quantity; replacements do not count
//   - Codes continue the line sequence: already+1, already+2, ...
//   - Every new piece waits at the first station of the pipeline
//   - The order becomes Active as soon as one piece is created
//
// Example usage:
//
//	result, err := services.NewActivator().Activate(o, requests, counts, pipeline, time.Now())
//	if err != nil {
//	    return err
//	}
//	for _, p := range result.Pieces {
//	    // save p
//	}
type Activator struct{}

func NewActivator() Activator {
	return Activator{}
}

// Activate plans the pieces for requests. already holds the number of original pieces each
// line had before the call. The order is changed in place; the pieces are returned unsaved.
func (a Activator) Activate(
	o *order.Order,
	requests []ActivationRequest,
	already map[kernel.UUID]int,
	pipeline station.Pipeline,
	now time.Time,
) (ActivationResult, error) {
	var result ActivationResult

	if err := o.Validate(); err != nil {
		return result, err
	}
	if err := o.EnsureCanActivate(); err != nil {
		return result, err
	}

	entry, err := pipeline.First()
	if err != nil {
		return result, err
	}

	counts := make(map[kernel.UUID]int, len(already))
	for id, n := range already {
		counts[id] = n
	}

	touched := make(map[kernel.UUID]struct{})
	for _, req := range requests {
		if !req.Go {
			continue
		}

		line, err := o.Line(req.LineID)
		if err != nil {
			return ActivationResult{}, err
		}

		existing := counts[line.ID()]
		toCreate := min(req.Qty, line.Remaining(existing))
		if toCreate <= 0 {
			continue
		}

		for i := 1; i <= toCreate; i++ {
			seq := existing + i
			p, err := piece.NewPiece(
				kernel.NewUUID(), o.ID(), line.ID(), piece.Code(o.Number(), line.Code(), seq), seq, entry.ID(), now,
			)
			if err != nil {
				return ActivationResult{}, err
			}
			result.Pieces = append(result.Pieces, p)
		}

		counts[line.ID()] = existing + toCreate
		touched[line.ID()] = struct{}{}
	}

	result.TouchedLines = len(touched)
	if len(result.Pieces) == 0 {
		return result, nil
	}

	result.StatusUpdated, err = o.Activate(now)
	if err != nil {
		return ActivationResult{}, err
	}

	return result, nil
}
