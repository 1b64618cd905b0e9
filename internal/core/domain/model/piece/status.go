package piece

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status is the stored lifecycle state of a piece.
type Status string

const (
	Waiting    Status = "waiting"
	InProgress Status = "in_progress"
	Ready      Status = "ready"
	Broken     Status = "broken"
	Delivered  Status = "delivered"
)

// ReadySetNames are the stored status values that count as ready for delivery. The last two
// are written by older station terminals and are read as Ready.
var ReadySetNames = []string{"ready", "completed", "ready_for_delivery"}

// ParseStatus maps a stored value to a Status, case-insensitively.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, name := range ReadySetNames {
		if v == name {
			return Ready, nil
		}
	}

	switch Status(v) {
	case Waiting, InProgress, Broken, Delivered:
		return Status(v), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a piece status", s))
}

func (s Status) String() string {
	return string(s)
}

// Queued reports whether the piece sits in a station queue.
func (s Status) Queued() bool {
	return s == Waiting || s == InProgress
}
