package order

import (
	"time"

	"production/internal/core/domain/model/kernel"
)

// StatusChangedEvent is raised whenever the order lifecycle status moves.
type StatusChangedEvent struct {
	ID          string    `json:"event_id"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	At          time.Time `json:"occurred_at"`

	eventID kernel.UUID
	orderID kernel.UUID
}

func newStatusChangedEvent(o *Order, from Status, at time.Time) StatusChangedEvent {
	eventID := kernel.NewUUID()
	return StatusChangedEvent{
		ID:          eventID.String(),
		OrderID:     o.id.String(),
		OrderNumber: o.number,
		From:        from.String(),
		To:          o.status.String(),
		At:          at,
		eventID:     eventID,
		orderID:     o.id,
	}
}

func (e StatusChangedEvent) EventID() kernel.UUID {
	return e.eventID
}

func (e StatusChangedEvent) EventName() string {
	return "order.status_changed"
}

func (e StatusChangedEvent) AggregateID() kernel.UUID {
	return e.orderID
}

func (e StatusChangedEvent) OccurredAt() time.Time {
	return e.At
}
