package queries

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery looks an order up by its human number.
type GetOrderQuery struct {
	number string

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(number string) (GetOrderQuery, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order number")
	}
	return GetOrderQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Number() string {
	return q.number
}

type OrderView struct {
	ID           kernel.UUID
	Number       string
	Customer     string
	DeliveryDate *time.Time
	Status       string
	CreatedAt    time.Time
	Lines        []LineView
	Summary      delivery.Summary
	Deliveries   []DeliveryNoteView
}

// LineView counts pieces per line. Activated counts originals only; replacements stand in
// for broken originals and are included in Ready and Delivered.
type LineView struct {
	ID        kernel.UUID
	Code      string
	Quantity  int
	Size      string
	Type      string
	Notes     string
	Activated int
	Ready     int
	Delivered int
	Broken    int
}

type DeliveryNoteView = delivery.NoteRecord
