package commands

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrActivateOrderCommandIsNotConstructed = errors.New(
	"ActivateOrderCommand must be created via NewActivateOrderCommand constructor",
)

// ActivationLine asks for Qty pieces of a line. Lines with Go unset are skipped.
type ActivationLine struct {
	LineID kernel.UUID
	Qty    int
	Go     bool
}

// ActivateOrderCommand materializes pieces for some lines of an order in one batch.
type ActivateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []ActivationLine

	guard guard.ConstructorGuard
}

func NewActivateOrderCommand(orderID kernel.UUID, lines []ActivationLine) (ActivateOrderCommand, error) {
	cmd := ActivateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
	); err != nil {
		return ActivateOrderCommand{}, err
	}

	return cmd, nil
}

func (c ActivateOrderCommand) Validate() error {
	return c.guard.Validate(ErrActivateOrderCommandIsNotConstructed)
}

func (c ActivateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Requests converts the lines to the form the Activator plans with.
func (c ActivateOrderCommand) Requests() []services.ActivationRequest {
	out := make([]services.ActivationRequest, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, services.ActivationRequest{LineID: l.LineID, Qty: l.Qty, Go: l.Go})
	}
	return out
}

func (c *ActivateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ActivateOrderCommand) setLines(lines []ActivationLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for i, l := range lines {
		if err := l.LineID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("lines[%d].line_id", i), err)
		}
		if l.Qty < 0 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("lines[%d].qty", i), l.Qty, 0, "unbounded")
		}
	}
	c.lines = lines
	return nil
}
