// Package piecerepo persists pieces and their append-only event log.
//
// The pieces table caches the state every piece folds to; piece_events is the log itself.
// Both are written in the same statement batch, so the cache only drifts when rows are
// edited outside the application.
package piecerepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"

	"github.com/google/uuid"
)

// PieceDTO is the cached piece row. Seq is assigned by the database on insert and breaks
// created_at ties, so pieces of one activation batch keep their sequence order.
type PieceDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq              int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	LineID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Code             string     `gorm:"size:128;not null;uniqueIndex"`
	Sequence         int        `gorm:"not null"`
	Status           string     `gorm:"size:32;not null;index"`
	EntryStationID   uuid.UUID  `gorm:"type:uuid;not null"`
	CurrentStationID *uuid.UUID `gorm:"type:uuid;index"`
	NeedsReplacement bool       `gorm:"not null;default:false"`
	BrokenStationID  *uuid.UUID `gorm:"type:uuid"`
	BrokenReason     string
	ReplacesID       *uuid.UUID `gorm:"type:uuid;index"`
	ReplacementID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time  `gorm:"not null;index"`
}

func (PieceDTO) TableName() string {
	return "pieces"
}

// EventDTO is one log entry. Seq is the recording order; OccurredAt may tie.
type EventDTO struct {
	Seq           int64      `gorm:"primaryKey;autoIncrement"`
	ID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	PieceID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type          string     `gorm:"size:16;not null"`
	StationID     *uuid.UUID `gorm:"type:uuid"`
	NextStationID *uuid.UUID `gorm:"type:uuid"`
	UserID        string     `gorm:"size:128"`
	Notes         string
	OccurredAt    time.Time `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "piece_events"
}

func fromDomain(p *piece.Piece) PieceDTO {
	s := p.Snapshot()
	return PieceDTO{
		ID:               s.ID.Bytes(),
		OrderID:          s.OrderID.Bytes(),
		LineID:           s.LineID.Bytes(),
		Code:             s.Code,
		Sequence:         s.Sequence,
		Status:           s.Status.String(),
		EntryStationID:   s.EntryStation.Bytes(),
		CurrentStationID: rawID(s.CurrentStation),
		NeedsReplacement: s.NeedsReplacement,
		BrokenStationID:  rawID(s.BrokenStation),
		BrokenReason:     s.BrokenReason,
		ReplacesID:       rawID(s.Replaces),
		ReplacementID:    rawID(s.Replacement),
		CreatedAt:        s.CreatedAt,
	}
}

func toDomain(dto PieceDTO) (*piece.Piece, error) {
	var (
		s   piece.Snapshot
		err error
	)

	if s.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if s.OrderID, err = kernel.UUIDFromBytes(dto.OrderID[:]); err != nil {
		return nil, err
	}
	if s.LineID, err = kernel.UUIDFromBytes(dto.LineID[:]); err != nil {
		return nil, err
	}
	if s.EntryStation, err = kernel.UUIDFromBytes(dto.EntryStationID[:]); err != nil {
		return nil, err
	}
	if s.CurrentStation, err = domainID(dto.CurrentStationID); err != nil {
		return nil, err
	}
	if s.BrokenStation, err = domainID(dto.BrokenStationID); err != nil {
		return nil, err
	}
	if s.Replaces, err = domainID(dto.ReplacesID); err != nil {
		return nil, err
	}
	if s.Replacement, err = domainID(dto.ReplacementID); err != nil {
		return nil, err
	}

	s.Code = dto.Code
	s.Sequence = dto.Sequence
	s.Status = piece.Status(dto.Status)
	s.NeedsReplacement = dto.NeedsReplacement
	s.BrokenReason = dto.BrokenReason
	s.CreatedAt = dto.CreatedAt

	return piece.RestorePiece(s)
}

func eventFromDomain(e piece.Event) EventDTO {
	return EventDTO{
		ID:            e.ID().Bytes(),
		PieceID:       e.PieceID().Bytes(),
		Type:          string(e.Type()),
		StationID:     rawID(e.Station()),
		NextStationID: rawID(e.NextStation()),
		UserID:        e.UserID(),
		Notes:         e.Notes(),
		OccurredAt:    e.At(),
	}
}

func eventToDomain(dto EventDTO) (piece.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return piece.Event{}, err
	}
	pieceID, err := kernel.UUIDFromBytes(dto.PieceID[:])
	if err != nil {
		return piece.Event{}, err
	}
	typ, err := piece.ParseEventType(dto.Type)
	if err != nil {
		return piece.Event{}, err
	}
	station, err := domainID(dto.StationID)
	if err != nil {
		return piece.Event{}, err
	}
	next, err := domainID(dto.NextStationID)
	if err != nil {
		return piece.Event{}, err
	}

	return piece.RestoreEvent(id, pieceID, typ, station, next, dto.UserID, dto.Notes, dto.OccurredAt), nil
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
