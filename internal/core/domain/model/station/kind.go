package station

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Kind separates stations that belong to the production pipeline from the delivery station.
type Kind string

const (
	Production Kind = "production"
	Delivery   Kind = "delivery"
)

// ParseKind accepts the kind names case-insensitively. An empty string means Production.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Production):
		return Production, nil
	case string(Delivery):
		return Delivery, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a station kind", s))
	}
}

func (k Kind) Validate() error {
	if k != Production && k != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a station kind", string(k)))
	}
	return nil
}

func (k Kind) String() string {
	return string(k)
}
