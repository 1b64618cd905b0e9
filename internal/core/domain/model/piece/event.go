package piece

import (
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// EventType is the kind of a piece log entry.
type EventType string

const (
	Pass    EventType = "PASS"
	Break   EventType = "BROKEN"
	Deliver EventType = "DELIVERED"
)

func ParseEventType(s string) (EventType, error) {
	switch t := EventType(strings.ToUpper(strings.TrimSpace(s))); t {
	case Pass, Break, Deliver:
		return t, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a piece event type", s))
}

// Event is an immutable piece log entry.
type Event struct {
	id          kernel.UUID
	pieceID     kernel.UUID
	typ         EventType
	station     *kernel.UUID
	nextStation *kernel.UUID
	userID      string
	notes       string
	at          time.Time
}

// RestoreEvent rebuilds a log entry from persistence.
func RestoreEvent(
	id, pieceID kernel.UUID,
	typ EventType,
	station, nextStation *kernel.UUID,
	userID, notes string,
	at time.Time,
) Event {
	return Event{
		id:          id,
		pieceID:     pieceID,
		typ:         typ,
		station:     station,
		nextStation: nextStation,
		userID:      userID,
		notes:       notes,
		at:          at,
	}
}

func (e Event) ID() kernel.UUID {
	return e.id
}

func (e Event) PieceID() kernel.UUID {
	return e.pieceID
}

func (e Event) Type() EventType {
	return e.typ
}

// Station is where the event happened. Only DELIVERED events may have none.
func (e Event) Station() *kernel.UUID {
	return e.station
}

// NextStation is where a PASS routed the piece; nil when the pass cleared the last station.
func (e Event) NextStation() *kernel.UUID {
	return e.nextStation
}

func (e Event) UserID() string {
	return e.userID
}

func (e Event) Notes() string {
	return e.notes
}

func (e Event) At() time.Time {
	return e.at
}
