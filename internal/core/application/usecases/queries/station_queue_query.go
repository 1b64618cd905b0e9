package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrStationQueueQueryIsNotConstructed = errors.New(
	"StationQueueQuery must be created via NewStationQueueQuery constructor",
)

// StationQueueQuery lists the pieces waiting or in progress at one station.
type StationQueueQuery struct {
	stationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewStationQueueQuery(stationID kernel.UUID) (StationQueueQuery, error) {
	if err := stationID.Validate(); err != nil {
		return StationQueueQuery{}, errs.NewValueIsRequiredErrorWithCause("station_id", err)
	}
	return StationQueueQuery{stationID: stationID, guard: guard.NewConstructorGuard()}, nil
}

func (q StationQueueQuery) Validate() error {
	return q.guard.Validate(ErrStationQueueQueryIsNotConstructed)
}

func (q StationQueueQuery) StationID() kernel.UUID {
	return q.stationID
}

type QueueItem struct {
	PieceID     kernel.UUID
	Code        string
	Status      string
	OrderNumber string
	LineCode    string
	Size        string
	Type        string
	Replacement bool
	CreatedAt   time.Time
}
