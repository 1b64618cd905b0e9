package station

import (
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Registry is the full station set, active and inactive. Administrative mutations go
// through it so the ordering invariants are checked against every other station.
type Registry struct {
	stations []*Station
}

func NewRegistry(all []*Station) *Registry {
	stations := make([]*Station, 0, len(all))
	for _, s := range all {
		if s != nil {
			stations = append(stations, s)
		}
	}
	return &Registry{stations: stations}
}

func (r *Registry) Stations() []*Station {
	out := make([]*Station, len(r.stations))
	copy(out, r.stations)
	return out
}

func (r *Registry) Pipeline() Pipeline {
	return NewPipeline(r.stations)
}

// DeliveryStation returns the active delivery station, or nil when none is configured.
func (r *Registry) DeliveryStation() *Station {
	for _, s := range r.stations {
		if s.IsActive() && s.Kind() == Delivery {
			return s
		}
	}
	return nil
}

// Get returns the station with id.
func (r *Registry) Get(id kernel.UUID) (*Station, error) {
	for _, s := range r.stations {
		if s.ID().IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("station", id.String())
}

// NextStageOrder is one past the highest stage order in use.
func (r *Registry) NextStageOrder() int {
	highest := 0
	for _, s := range r.stations {
		if s.StageOrder() > highest {
			highest = s.StageOrder()
		}
	}
	return highest + 1
}

// Add registers a new station after checking code uniqueness and the active-set invariants.
func (r *Registry) Add(s *Station) error {
	if err := s.Validate(); err != nil {
		return err
	}

	for _, existing := range r.stations {
		if existing.ID().IsEqual(s.ID()) {
			return errs.NewConflictError("station "+s.Code(), "is already registered")
		}
		if strings.EqualFold(existing.Code(), s.Code()) {
			return errs.NewConflictError("station "+s.Code(), "code is already in use")
		}
	}

	if s.IsActive() {
		if err := r.checkActivation(s); err != nil {
			return err
		}
	}

	r.stations = append(r.stations, s)
	return nil
}

// Activate puts a station back into service.
func (r *Registry) Activate(id kernel.UUID) (*Station, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if s.IsActive() {
		return s, nil
	}
	if err = r.checkActivation(s); err != nil {
		return nil, err
	}

	s.activate()
	return s, nil
}

// Deactivate takes a station out of service. Callers must make sure no piece is queued at it.
func (r *Registry) Deactivate(id kernel.UUID) (*Station, error) {
	s, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	s.deactivate()
	return s, nil
}

// Reorder assigns stage orders 1..n to the production stations in the order given by ids.
// ids must name every production station exactly once. All renumbered stations are returned.
func (r *Registry) Reorder(ids []kernel.UUID) ([]*Station, error) {
	production := make(map[kernel.UUID]*Station)
	for _, s := range r.stations {
		if s.Kind() == Production {
			production[s.ID()] = s
		}
	}

	if len(ids) != len(production) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"station_ids",
			fmt.Errorf("%d ids given for %d production stations", len(ids), len(production)),
		)
	}

	ordered := make([]*Station, 0, len(ids))
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("station_ids", fmt.Errorf("%s is listed twice", id))
		}
		seen[id] = struct{}{}

		s, ok := production[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("production station", id.String())
		}
		ordered = append(ordered, s)
	}

	for i, s := range ordered {
		if err := s.SetStageOrder(i + 1); err != nil {
			return nil, err
		}
	}

	return ordered, nil
}

func (r *Registry) checkActivation(s *Station) error {
	for _, other := range r.stations {
		if other.ID().IsEqual(s.ID()) || !other.IsActive() || other.Kind() != s.Kind() {
			continue
		}
		switch s.Kind() {
		case Delivery:
			return errs.NewConflictError("station "+s.Code(),
				fmt.Sprintf("station %s is already the active delivery station", other.Code()))
		case Production:
			if other.StageOrder() == s.StageOrder() {
				return errs.NewConflictError("station "+s.Code(),
					fmt.Sprintf("stage order %d is taken by active station %s", s.StageOrder(), other.Code()))
			}
		}
	}
	return nil
}
