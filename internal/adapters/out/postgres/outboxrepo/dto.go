// Package outboxrepo stores integration events written in the same transaction as the
// change that raised them, until a publisher hands them to the message bus.
package outboxrepo

import (
	"encoding/json"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"size:64;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// FromDomainEvent serializes a raised event. The event value itself is the JSON payload.
func FromDomainEvent(event kernel.DomainEvent) (MessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, err
	}

	return MessageDTO{
		ID:          event.EventID().Bytes(),
		AggregateID: event.AggregateID().Bytes(),
		Name:        event.EventName(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toPort(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		AggregateID: aggregateID,
		Name:        dto.Name,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
