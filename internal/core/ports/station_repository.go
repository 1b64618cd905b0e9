// Package ports defines the contracts between the production core and its adapters:
// repositories bound to a unit of work, the outbox and the message bus.
package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/station"
)

// StationRepository persists the Station Registry.
type StationRepository interface {
	Add(ctx context.Context, s *station.Station) error

	Update(ctx context.Context, s *station.Station) error

	// Get returns ObjectNotFound for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*station.Station, error)

	// GetAll returns every station, active or not, without locking.
	GetAll(ctx context.Context) ([]*station.Station, error)

	// LockAll returns every station with its row locked until the transaction ends.
	// Administrative changes take this lock so two of them never interleave.
	LockAll(ctx context.Context) ([]*station.Station, error)
}
