// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored in the orders table and its lines in order_lines.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"size:64;not null;uniqueIndex"`
	Customer     string     `gorm:"size:255;not null"`
	DeliveryDate *time.Time `gorm:"type:date"`
	Status       int        `gorm:"not null;index"`
	CreatedAt    time.Time  `gorm:"not null"`
	Lines        []LineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one order line. Position keeps the lines in the order they were taken in.
type LineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_lines_order_code"`
	Position int       `gorm:"not null"`
	Code     string    `gorm:"size:64;not null;uniqueIndex:idx_order_lines_order_code"`
	Quantity int       `gorm:"not null"`
	Size     string    `gorm:"size:64"`
	Type     string    `gorm:"size:64"`
	Notes    string
}

func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := make([]LineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, LineDTO{
			ID:       l.ID().Bytes(),
			OrderID:  o.ID().Bytes(),
			Position: i,
			Code:     l.Code(),
			Quantity: l.Quantity(),
			Size:     l.Size(),
			Type:     l.Type(),
			Notes:    l.Notes(),
		})
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		Number:       o.Number(),
		Customer:     o.Customer(),
		DeliveryDate: o.DeliveryDate(),
		Status:       int(o.Status()),
		CreatedAt:    o.CreatedAt(),
		Lines:        lines,
	}
}

// toDomain expects dto.Lines to be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(l.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(lineID, l.Code, l.Quantity, l.Size, l.Type, l.Notes)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, dto.Number, dto.Customer, dto.DeliveryDate, order.Status(dto.Status), lines, dto.CreatedAt)
}
