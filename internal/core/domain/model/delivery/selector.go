package delivery

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Mode tells how the pieces of a delivery are chosen.
type Mode string

const (
	// Grouped picks the oldest ready pieces per line/size/type selector.
	Grouped Mode = "grouped"
	// Pieces takes an explicit list of piece codes.
	Pieces Mode = "pieces"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Grouped, Pieces:
		return m, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("mode", fmt.Errorf("%q is not a delivery mode", s))
}

// Selector asks for Qty ready pieces of one line with the given size and type. An empty Size
// or Type does not narrow the match.
type Selector struct {
	LineCode string
	Size     string
	Type     string
	Qty      int
}

func NewSelector(lineCode, size, typ string, qty int) (Selector, error) {
	s := Selector{
		LineCode: strings.TrimSpace(lineCode),
		Size:     strings.TrimSpace(size),
		Type:     strings.TrimSpace(typ),
		Qty:      qty,
	}
	if err := s.Validate(); err != nil {
		return Selector{}, err
	}
	return s, nil
}

func (s Selector) Validate() error {
	var err error
	if s.LineCode == "" {
		err = errs.NewValueIsRequiredError("line code")
	}
	if s.Qty < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("qty", s.Qty, 1, "unbounded"))
	}
	return err
}

func (s Selector) String() string {
	return fmt.Sprintf("%s/%s/%s", s.LineCode, s.Size, s.Type)
}

// ShortfallError reports a selector with fewer ready pieces than requested.
func ShortfallError(s Selector, available int) error {
	return errs.NewConflictError(
		"delivery",
		fmt.Sprintf("not enough ready pieces for group %s: requested %d, available %d", s, s.Qty, available),
	)
}

// MissingPiecesError reports codes that are not ready pieces of the order.
func MissingPiecesError(codes []string) error {
	return errs.NewConflictError(
		"delivery",
		fmt.Sprintf("pieces not found in ready set: %s", strings.Join(codes, ", ")),
	)
}
