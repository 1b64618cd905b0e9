package station

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrStationIsNotConstructed = errors.New("Station must be created via NewStation constructor")
	ErrCodeIsRequired          = errs.NewValueIsRequiredError("code")
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
)

// Station is one physical processing step. Stations are never deleted; taking one out of
// the pipeline is done by deactivating it.
type Station struct {
	id         kernel.UUID
	code       string
	name       string
	kind       Kind
	stageOrder int
	active     bool

	guard guard.ConstructorGuard
}

// NewStation creates an active station. Codes are stored upper-cased.
func NewStation(id kernel.UUID, code, name string, kind Kind, stageOrder int) (*Station, error) {
	return RestoreStation(id, code, name, kind, stageOrder, true)
}

// RestoreStation rebuilds a station from persistence.
func RestoreStation(id kernel.UUID, code, name string, kind Kind, stageOrder int, active bool) (*Station, error) {
	s := &Station{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setName(name),
		s.setKind(kind),
		s.SetStageOrder(stageOrder),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Station) Validate() error {
	if s == nil {
		return ErrStationIsNotConstructed
	}
	return s.guard.Validate(ErrStationIsNotConstructed)
}

func (s *Station) ID() kernel.UUID {
	return s.id
}

func (s *Station) Code() string {
	return s.code
}

func (s *Station) Name() string {
	return s.name
}

func (s *Station) Kind() Kind {
	return s.kind
}

func (s *Station) StageOrder() int {
	return s.stageOrder
}

func (s *Station) IsActive() bool {
	return s.active
}

// InPipeline reports whether the station is an active production station.
func (s *Station) InPipeline() bool {
	return s.active && s.kind == Production
}

func (s *Station) Rename(name string) error {
	return s.setName(name)
}

// SetStageOrder moves the station to position stageOrder (1-based). Uniqueness among active
// production stations is checked by Registry.
func (s *Station) SetStageOrder(stageOrder int) error {
	if stageOrder < 1 {
		return errs.NewValueIsOutOfRangeError("stage_order", stageOrder, 1, "unbounded")
	}
	s.stageOrder = stageOrder
	return nil
}

func (s *Station) activate() {
	s.active = true
}

func (s *Station) deactivate() {
	s.active = false
}

// precedes is the pipeline ordering: stage order ascending, identifier ascending for ties.
func (s *Station) precedes(other *Station) bool {
	if s.stageOrder != other.stageOrder {
		return s.stageOrder < other.stageOrder
	}
	return s.id.Compare(other.id) < 0
}

func (s *Station) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Station) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrCodeIsRequired
	}
	if strings.ContainsAny(code, " \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q contains whitespace", code))
	}
	s.code = code
	return nil
}

func (s *Station) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Station) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	return nil
}
