package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/delivery"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// DeliveryInput is the delivery note metadata entered by the operator. An empty NoteNumber
// lets the engine allocate the next one.
type DeliveryInput struct {
	OrderNumber string
	NoteNumber  string
	Driver      string
	Notes       string
	UserID      string
}

// ConfirmDeliveryCommand hands a set of ready pieces over to the customer, chosen either by
// line/size/type selectors (grouped mode) or by explicit piece codes (pieces mode).
//
// Example:
//
//	sel, _ := delivery.NewSelector("A1", "1200x800", "tempered", 4)
//	cmd, err := NewGroupedDeliveryCommand(DeliveryInput{OrderNumber: "ORD-2041", UserID: "u7"}, []delivery.Selector{sel})
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	input     DeliveryInput
	mode      delivery.Mode
	selectors []delivery.Selector
	codes     []string

	guard guard.ConstructorGuard
}

func NewGroupedDeliveryCommand(input DeliveryInput, selectors []delivery.Selector) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		mode:  delivery.Grouped,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInput(input),
		cmd.setSelectors(selectors),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

func NewPiecesDeliveryCommand(input DeliveryInput, codes []string) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		mode:  delivery.Pieces,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setInput(input),
		cmd.setCodes(codes),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Input() DeliveryInput {
	return c.input
}

func (c ConfirmDeliveryCommand) Mode() delivery.Mode {
	return c.mode
}

func (c ConfirmDeliveryCommand) Selectors() []delivery.Selector {
	out := make([]delivery.Selector, len(c.selectors))
	copy(out, c.selectors)
	return out
}

func (c ConfirmDeliveryCommand) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

func (c *ConfirmDeliveryCommand) setInput(input DeliveryInput) error {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	input.NoteNumber = strings.TrimSpace(input.NoteNumber)
	input.UserID = strings.TrimSpace(input.UserID)

	var err error
	if input.OrderNumber == "" {
		err = ErrOrderNumberIsRequired
	}
	if input.UserID == "" {
		err = errors.Join(err, ErrUserIsRequired)
	}
	c.input = input
	return err
}

func (c *ConfirmDeliveryCommand) setSelectors(selectors []delivery.Selector) error {
	if len(selectors) == 0 {
		return errs.NewValueIsRequiredError("groups")
	}
	for _, s := range selectors {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	c.selectors = selectors
	return nil
}

func (c *ConfirmDeliveryCommand) setCodes(codes []string) error {
	cleaned := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			cleaned = append(cleaned, code)
		}
	}
	if len(cleaned) == 0 {
		return errs.NewValueIsRequiredError("piece codes")
	}
	c.codes = cleaned
	return nil
}
