package station

import (
	"sort"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// ErrNoActiveStations is returned when the pipeline has no entry point.
var ErrNoActiveStations = errs.NewPreconditionFailedError("no active stations")

// Pipeline is the ordered sequence of active production stations.
type Pipeline struct {
	stations []*Station
}

// NewPipeline keeps the active production stations of all and orders them by stage order,
// then by identifier.
func NewPipeline(all []*Station) Pipeline {
	stations := make([]*Station, 0, len(all))
	for _, s := range all {
		if s != nil && s.InPipeline() {
			stations = append(stations, s)
		}
	}

	sort.SliceStable(stations, func(i, j int) bool {
		return stations[i].precedes(stations[j])
	})

	return Pipeline{stations: stations}
}

// Stations returns the pipeline in order.
func (p Pipeline) Stations() []*Station {
	out := make([]*Station, len(p.stations))
	copy(out, p.stations)
	return out
}

func (p Pipeline) Len() int {
	return len(p.stations)
}

// First returns the entry station for new and replacement pieces.
func (p Pipeline) First() (*Station, error) {
	if len(p.stations) == 0 {
		return nil, ErrNoActiveStations
	}
	return p.stations[0], nil
}

// Contains reports whether id is an active production station.
func (p Pipeline) Contains(id kernel.UUID) bool {
	return p.indexOf(id) >= 0
}

// Next returns the station that follows id. When id is the last station, next is nil and
// last is true.
func (p Pipeline) Next(id kernel.UUID) (next *Station, last bool, err error) {
	idx := p.indexOf(id)
	if idx < 0 {
		return nil, false, errs.NewConflictError("station "+id.String(), "is not an active production station")
	}
	if idx == len(p.stations)-1 {
		return nil, true, nil
	}
	return p.stations[idx+1], false, nil
}

func (p Pipeline) indexOf(id kernel.UUID) int {
	for i, s := range p.stations {
		if s.ID().IsEqual(id) {
			return i
		}
	}
	return -1
}
