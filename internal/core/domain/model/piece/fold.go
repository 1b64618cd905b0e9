package piece

import "production/internal/core/domain/model/kernel"

// State is the derived part of a piece: what its event log says it is now.
type State struct {
	Status         Status
	CurrentStation *kernel.UUID
}

// Equal compares status and current station.
func (s State) Equal(other State) bool {
	if s.Status != other.Status {
		return false
	}
	if s.CurrentStation == nil || other.CurrentStation == nil {
		return s.CurrentStation == nil && other.CurrentStation == nil
	}
	return s.CurrentStation.IsEqual(*other.CurrentStation)
}

// Fold replays events, in the order they were recorded, on top of the initial state of a
// piece that entered the pipeline at entry.
func Fold(entry kernel.UUID, events []Event) State {
	state := State{Status: Waiting, CurrentStation: ptr(entry)}

	for _, e := range events {
		switch e.Type() {
		case Pass:
			if e.NextStation() != nil {
				state = State{Status: InProgress, CurrentStation: ptr(*e.NextStation())}
			} else {
				state = State{Status: Ready, CurrentStation: copyID(e.Station())}
			}
		case Break:
			state = State{Status: Broken, CurrentStation: copyID(e.Station())}
		case Deliver:
			current := state.CurrentStation
			if e.Station() != nil {
				current = copyID(e.Station())
			}
			state = State{Status: Delivered, CurrentStation: current}
		}
	}

	return state
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}

func copyID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	return ptr(*id)
}
