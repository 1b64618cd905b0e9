package kernel

import "time"

// DomainEvent is a fact raised by an aggregate during a business operation. The unit of
// work collects the events of every tracked aggregate and stores them in the outbox inside
// the same transaction, so they are published only if the operation commits.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// AggregateRoot is implemented by aggregates whose changes are published as integration events.
type AggregateRoot interface {
	ID() UUID
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregate accumulates raised domain events. Embed it in an aggregate root.
type BaseAggregate struct {
	domainEvents []DomainEvent
}

// RaiseDomainEvent records event for publication.
func (a *BaseAggregate) RaiseDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// DomainEvents returns a copy of the events raised since the last ClearDomainEvents.
func (a *BaseAggregate) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.domainEvents))
	copy(out, a.domainEvents)
	return out
}

func (a *BaseAggregate) ClearDomainEvents() {
	a.domainEvents = nil
}
