package order

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Draft ──activate──> Active ──complete──> Completed
//	  │                 │  ↑
//	  │           pause │  │ resume/activate
//	  │                 ↓  │
//	  │                Paused
//	  └──────┬──────────┘
//	         └──cancel──> Cancelled
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Draft is the status of a freshly imported order with no pieces yet.
	Draft

	// Active orders have at least one piece in production.
	Active

	// Paused orders keep their pieces but are on hold.
	Paused

	// Completed orders have every requested unit delivered. Terminal.
	Completed

	// Cancelled orders are abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "Draft",
		Active:    "Active",
		Paused:    "Paused",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// ParseStatus maps a status name, case-insensitively, to its value.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values read from persistence.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Activate transitions Draft or Paused to Active. Active stays Active.
func (s Status) Activate() (Status, error) {
	switch s {
	case Draft, Paused, Active:
		return Active, nil
	default:
		return Unknown, s.transitionError("activate")
	}
}

// Pause transitions Active to Paused.
func (s Status) Pause() (Status, error) {
	if s != Active {
		return Unknown, s.transitionError("pause")
	}
	return Paused, nil
}

// Resume transitions Paused back to Active.
func (s Status) Resume() (Status, error) {
	if s != Paused {
		return Unknown, s.transitionError("resume")
	}
	return Active, nil
}

// Complete transitions Active to Completed.
func (s Status) Complete() (Status, error) {
	if s != Active {
		return Unknown, s.transitionError("complete")
	}
	return Completed, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return Unknown, s.transitionError("cancel")
	}
	return Cancelled, nil
}

func (s Status) transitionError(action string) error {
	return errs.NewConflictError("order", fmt.Sprintf("%s is not a valid status to %s", s.String(), action))
}
