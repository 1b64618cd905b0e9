package order

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
	ErrLineCodeIsRequired   = errs.NewValueIsRequiredError("line code")
)

// Line is one line item of an order. Its quantity is final once the order has been taken in.
type Line struct {
	id       kernel.UUID
	code     string
	quantity int
	size     string
	typ      string
	notes    string

	guard guard.ConstructorGuard
}

func NewLine(id kernel.UUID, code string, quantity int, size, typ, notes string) (*Line, error) {
	l := &Line{
		size:  strings.TrimSpace(size),
		typ:   strings.TrimSpace(typ),
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setID(id),
		l.setCode(code),
		l.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) Code() string {
	return l.code
}

// Quantity is the number of pieces the customer requested for the line.
func (l *Line) Quantity() int {
	return l.quantity
}

func (l *Line) Size() string {
	return l.size
}

func (l *Line) Type() string {
	return l.typ
}

func (l *Line) Notes() string {
	return l.notes
}

// Remaining is how many more pieces may be activated when already exist.
func (l *Line) Remaining(already int) int {
	return max(0, l.quantity-already)
}

// Matches reports whether the line has the given code, size and type, case-insensitively.
// An empty size or type matches any.
func (l *Line) Matches(code, size, typ string) bool {
	return strings.EqualFold(l.code, strings.TrimSpace(code)) &&
		matchesOptional(l.size, size) &&
		matchesOptional(l.typ, typ)
}

func matchesOptional(have, want string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(have, want)
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrLineCodeIsRequired
	}
	l.code = code
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	l.quantity = quantity
	return nil
}
