// Package deliveryrepo persists delivery notes and the pieces each one handed over.
package deliveryrepo

import (
	"time"

	"production/internal/core/domain/model/delivery"

	"github.com/google/uuid"
)

type NoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_delivery_notes_order_number"`
	Number    string    `gorm:"size:64;not null;uniqueIndex:idx_delivery_notes_order_number"`
	Driver    string    `gorm:"size:255"`
	Notes     string
	CreatedBy string         `gorm:"size:128"`
	CreatedAt time.Time      `gorm:"not null;index"`
	Pieces    []NotePieceDTO `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

func (NoteDTO) TableName() string {
	return "delivery_notes"
}

// NotePieceDTO links a delivered piece to its note. A piece is delivered at most once.
type NotePieceDTO struct {
	NoteID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PieceID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (NotePieceDTO) TableName() string {
	return "delivery_pieces"
}

func fromDomain(n *delivery.Note) NoteDTO {
	pieces := make([]NotePieceDTO, 0, len(n.Pieces()))
	for _, id := range n.Pieces() {
		pieces = append(pieces, NotePieceDTO{NoteID: n.ID().Bytes(), PieceID: id.Bytes()})
	}

	return NoteDTO{
		ID:        n.ID().Bytes(),
		OrderID:   n.OrderID().Bytes(),
		Number:    n.Number(),
		Driver:    n.Driver(),
		Notes:     n.Notes(),
		CreatedBy: n.CreatedBy(),
		CreatedAt: n.CreatedAt(),
		Pieces:    pieces,
	}
}
