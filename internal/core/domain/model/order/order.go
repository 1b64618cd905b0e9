package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrNumberIsRequired      = errs.NewValueIsRequiredError("order number")
	ErrCustomerIsRequired    = errs.NewValueIsRequiredError("customer")
	ErrLinesAreRequired      = errs.NewValueIsRequiredError("lines")
)

// Order is the aggregate root for a customer order and its lines.
type Order struct {
	kernel.BaseAggregate

	id           kernel.UUID
	number       string
	customer     string
	deliveryDate *time.Time
	status       Status
	lines        []*Line
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Draft order.
func NewOrder(
	id kernel.UUID,
	number string,
	customer string,
	deliveryDate *time.Time,
	lines []*Line,
	now time.Time,
) (*Order, error) {
	return RestoreOrder(id, number, customer, deliveryDate, Draft, lines, now)
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customer string,
	deliveryDate *time.Time,
	status Status,
	lines []*Line,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		deliveryDate: deliveryDate,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Customer() string {
	return o.customer
}

func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Line returns the line with id.
func (o *Order) Line(id kernel.UUID) (*Line, error) {
	for _, l := range o.lines {
		if l.ID().IsEqual(id) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("line", id.String())
}

// RequestedUnits is the sum of all line quantities.
func (o *Order) RequestedUnits() int {
	total := 0
	for _, l := range o.lines {
		total += l.Quantity()
	}
	return total
}

// EnsureCanActivate rejects activation for terminal orders.
func (o *Order) EnsureCanActivate() error {
	_, err := o.status.Activate()
	return err
}

// Activate moves a Draft or Paused order to Active. It reports whether the status changed.
func (o *Order) Activate(now time.Time) (bool, error) {
	return o.transition(o.status.Activate, now)
}

func (o *Order) Pause(now time.Time) (bool, error) {
	return o.transition(o.status.Pause, now)
}

func (o *Order) Resume(now time.Time) (bool, error) {
	return o.transition(o.status.Resume, now)
}

func (o *Order) Complete(now time.Time) (bool, error) {
	return o.transition(o.status.Complete, now)
}

func (o *Order) Cancel(now time.Time) (bool, error) {
	return o.transition(o.status.Cancel, now)
}

func (o *Order) transition(next func() (Status, error), now time.Time) (bool, error) {
	newStatus, err := next()
	if err != nil {
		return false, err
	}
	if newStatus == o.status {
		return false, nil
	}

	from := o.status
	o.status = newStatus
	o.RaiseDomainEvent(newStatusChangedEvent(o, from, now))
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return ErrCustomerIsRequired
	}
	o.customer = customer
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(l.Code())
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("line code %q is used twice", l.Code()))
		}
		seen[key] = struct{}{}
	}

	o.lines = lines
	return nil
}
