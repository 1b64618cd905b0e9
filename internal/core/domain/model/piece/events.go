package piece

import (
	"time"

	"production/internal/core/domain/model/kernel"
)

const (
	CreatedEventName   = "piece.created"
	PassedEventName    = "piece.passed"
	BrokenEventName    = "piece.broken"
	ReplacedEventName  = "piece.replaced"
	DeliveredEventName = "piece.delivered"
)

// LifecycleEvent is the integration event raised for every piece mutation.
type LifecycleEvent struct {
	ID          string    `json:"event_id"`
	Name        string    `json:"event"`
	PieceID     string    `json:"piece_id"`
	PieceCode   string    `json:"piece_code"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	StationID   string    `json:"station_id,omitempty"`
	Replacement string    `json:"replacement_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	At          time.Time `json:"occurred_at"`

	eventID kernel.UUID
	pieceID kernel.UUID
}

func newLifecycleEvent(name string, p *Piece, userID string, at time.Time) LifecycleEvent {
	eventID := kernel.NewUUID()
	e := LifecycleEvent{
		ID:        eventID.String(),
		Name:      name,
		PieceID:   p.id.String(),
		PieceCode: p.code,
		OrderID:   p.orderID.String(),
		Status:    p.status.String(),
		UserID:    userID,
		At:        at,
		eventID:   eventID,
		pieceID:   p.id,
	}
	if p.currentStation != nil {
		e.StationID = p.currentStation.String()
	}
	if p.replacement != nil {
		e.Replacement = p.replacement.String()
	}
	return e
}

func (e LifecycleEvent) EventID() kernel.UUID {
	return e.eventID
}

func (e LifecycleEvent) EventName() string {
	return e.Name
}

func (e LifecycleEvent) AggregateID() kernel.UUID {
	return e.pieceID
}

func (e LifecycleEvent) OccurredAt() time.Time {
	return e.At
}
