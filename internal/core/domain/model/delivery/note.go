package delivery

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrNoteIsNotConstructed = errors.New("Note must be created via NewNote constructor")
	ErrNoPieces             = errs.NewValueIsRequiredError("pieces")

	trailingDigits = regexp.MustCompile(`(\d+)\s*$`)
)

// Note is one physical handover of ready pieces to the customer.
type Note struct {
	id        kernel.UUID
	orderID   kernel.UUID
	number    string
	driver    string
	notes     string
	createdBy string
	createdAt time.Time
	pieces    []kernel.UUID

	guard guard.ConstructorGuard
}

func NewNote(id, orderID kernel.UUID, number, driver, notes, createdBy string, createdAt time.Time) (*Note, error) {
	n := &Note{
		driver:    strings.TrimSpace(driver),
		notes:     strings.TrimSpace(notes),
		createdBy: createdBy,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	number = strings.TrimSpace(number)
	if number == "" {
		return nil, errs.NewValueIsRequiredError("delivery note number")
	}
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("delivery note identity", err)
	}

	n.id, n.orderID, n.number = id, orderID, number
	return n, nil
}

func (n *Note) Validate() error {
	if n == nil {
		return ErrNoteIsNotConstructed
	}
	return n.guard.Validate(ErrNoteIsNotConstructed)
}

func (n *Note) ID() kernel.UUID {
	return n.id
}

func (n *Note) OrderID() kernel.UUID {
	return n.orderID
}

func (n *Note) Number() string {
	return n.number
}

func (n *Note) Driver() string {
	return n.driver
}

func (n *Note) Notes() string {
	return n.notes
}

func (n *Note) CreatedBy() string {
	return n.createdBy
}

func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Note) Pieces() []kernel.UUID {
	out := make([]kernel.UUID, len(n.pieces))
	copy(out, n.pieces)
	return out
}

// AddPiece attaches a delivered piece. A piece may be attached only once.
func (n *Note) AddPiece(pieceID kernel.UUID) error {
	for _, id := range n.pieces {
		if id.IsEqual(pieceID) {
			return errs.NewConflictError("delivery note "+n.number, fmt.Sprintf("piece %s is listed twice", pieceID))
		}
	}
	n.pieces = append(n.pieces, pieceID)
	return nil
}

// NextNoteNumber returns the number following the highest numeric suffix among existing,
// zero-padded to four digits. The first note of an order is DN-0001.
func NextNoteNumber(existing []string) string {
	highest := 0
	for _, number := range existing {
		m := trailingDigits.FindStringSubmatch(number)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("DN-%04d", highest+1)
}
