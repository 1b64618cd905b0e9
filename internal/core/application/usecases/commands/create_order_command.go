package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
	ErrCustomerIsRequired    = errs.NewValueIsRequiredError("customer")
	ErrLinesAreRequired      = errs.NewValueIsRequiredError("lines")
)

// OrderLineInput is one line of an order as handed over by order intake.
type OrderLineInput struct {
	Code  string
	Qty   int
	Size  string
	Type  string
	Notes string
}

// CreateOrderCommand registers a customer order in Draft status. Quantities are final once
// the order exists.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("ORD-2041", "ACME Glass", &due, []OrderLineInput{
//	    {Code: "A1", Qty: 4, Size: "1200x800", Type: "tempered"},
//	})
//	if err != nil {
//	    return err
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	number       string
	customer     string
	deliveryDate *time.Time
	lines        []OrderLineInput

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	number, customer string,
	deliveryDate *time.Time,
	lines []OrderLineInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		deliveryDate: deliveryDate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNumber(number),
		cmd.setCustomer(customer),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Number() string {
	return c.number
}

func (c CreateOrderCommand) Customer() string {
	return c.customer
}

func (c CreateOrderCommand) DeliveryDate() *time.Time {
	return c.deliveryDate
}

func (c CreateOrderCommand) Lines() []OrderLineInput {
	out := make([]OrderLineInput, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CreateOrderCommand) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrOrderNumberIsRequired
	}
	c.number = number
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return ErrCustomerIsRequired
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for i, l := range lines {
		if strings.TrimSpace(l.Code) == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("lines[%d].code", i))
		}
		if l.Qty < 1 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("lines[%d].qty", i), l.Qty, 1, "unbounded")
		}
	}
	c.lines = lines
	return nil
}
