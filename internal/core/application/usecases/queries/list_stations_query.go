// Package queries contains the read side: raw SQL through gorm returning read models shaped
// for the station terminals and the office screens.
package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrListStationsQueryIsNotConstructed = errors.New(
	"ListStationsQuery must be created via NewListStationsQuery constructor",
)

type ListStationsQuery struct {
	guard guard.ConstructorGuard
}

func NewListStationsQuery() ListStationsQuery {
	return ListStationsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListStationsQuery) Validate() error {
	return q.guard.Validate(ErrListStationsQueryIsNotConstructed)
}

// StationView is a station with the number of pieces queued at it.
type StationView struct {
	ID         kernel.UUID
	Code       string
	Name       string
	Kind       string
	StageOrder int
	Active     bool
	Queued     int
}
