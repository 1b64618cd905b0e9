package piece

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
	ErrPieceIsNotConstructed = errors.New("Piece must be created via NewPiece or NewReplacement constructor")
	ErrCodeIsRequired        = errs.NewValueIsRequiredError("piece code")
)

// Piece is the aggregate root of one trackable unit. Status and current station are only
// changed together with appending an Event to the log.
type Piece struct {
	kernel.BaseAggregate

	id               kernel.UUID
	orderID          kernel.UUID
	lineID           kernel.UUID
	code             string
	sequence         int
	status           Status
	entryStation     kernel.UUID
	currentStation   *kernel.UUID
	needsReplacement bool
	brokenStation    *kernel.UUID
	brokenReason     string
	replaces         *kernel.UUID
	replacement      *kernel.UUID
	createdAt        time.Time

	newEvents []Event

	guard guard.ConstructorGuard
}

// NewPiece creates an activated piece waiting at the entry station.
func NewPiece(id, orderID, lineID kernel.UUID, code string, sequence int, entry kernel.UUID, now time.Time) (*Piece, error) {
	if sequence < 1 {
		return nil, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	p, err := newWaitingPiece(id, orderID, lineID, code, sequence, entry, now)
	if err != nil {
		return nil, err
	}
	p.RaiseDomainEvent(newLifecycleEvent(CreatedEventName, p, "", now))
	return p, nil
}

// NewReplacement creates the successor of a broken piece, waiting at the entry station.
// The original is not modified; call ResolveWith on it in the same unit of work.
func NewReplacement(id kernel.UUID, original *Piece, code string, entry kernel.UUID, now time.Time) (*Piece, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	p, err := newWaitingPiece(id, original.orderID, original.lineID, code, 0, entry, now)
	if err != nil {
		return nil, err
	}
	p.replaces = ptr(original.id)
	p.RaiseDomainEvent(newLifecycleEvent(CreatedEventName, p, "", now))
	return p, nil
}

func newWaitingPiece(id, orderID, lineID kernel.UUID, code string, sequence int, entry kernel.UUID, now time.Time) (*Piece, error) {
	p := &Piece{
		sequence:       sequence,
		status:         Waiting,
		currentStation: ptr(entry),
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("piece id", id),
		validateID("order id", orderID),
		validateID("line id", lineID),
		validateID("entry station", entry),
		p.setCode(code),
	); err != nil {
		return nil, err
	}

	p.id, p.orderID, p.lineID, p.entryStation = id, orderID, lineID, entry
	return p, nil
}

// Snapshot is the persisted form of a piece.
type Snapshot struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	LineID           kernel.UUID
	Code             string
	Sequence         int
	Status           Status
	EntryStation     kernel.UUID
	CurrentStation   *kernel.UUID
	NeedsReplacement bool
	BrokenStation    *kernel.UUID
	BrokenReason     string
	Replaces         *kernel.UUID
	Replacement      *kernel.UUID
	CreatedAt        time.Time
}

// RestorePiece rebuilds a piece from persistence.
func RestorePiece(s Snapshot) (*Piece, error) {
	p := &Piece{
		sequence:         s.Sequence,
		currentStation:   s.CurrentStation,
		needsReplacement: s.NeedsReplacement,
		brokenStation:    s.BrokenStation,
		brokenReason:     s.BrokenReason,
		replaces:         s.Replaces,
		replacement:      s.Replacement,
		createdAt:        s.CreatedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		validateID("piece id", s.ID),
		validateID("order id", s.OrderID),
		validateID("line id", s.LineID),
		validateID("entry station", s.EntryStation),
		p.setCode(s.Code),
	); err != nil {
		return nil, err
	}
	status, err := ParseStatus(string(s.Status))
	if err != nil {
		return nil, err
	}

	p.status = status
	p.id, p.orderID, p.lineID, p.entryStation = s.ID, s.OrderID, s.LineID, s.EntryStation
	return p, nil
}

func (p *Piece) Snapshot() Snapshot {
	return Snapshot{
		ID:               p.id,
		OrderID:          p.orderID,
		LineID:           p.lineID,
		Code:             p.code,
		Sequence:         p.sequence,
		Status:           p.status,
		EntryStation:     p.entryStation,
		CurrentStation:   copyID(p.currentStation),
		NeedsReplacement: p.needsReplacement,
		BrokenStation:    copyID(p.brokenStation),
		BrokenReason:     p.brokenReason,
		Replaces:         copyID(p.replaces),
		Replacement:      copyID(p.replacement),
		CreatedAt:        p.createdAt,
	}
}

func (p *Piece) Validate() error {
	if p == nil {
		return ErrPieceIsNotConstructed
	}
	return p.guard.Validate(ErrPieceIsNotConstructed)
}

func (p *Piece) ID() kernel.UUID {
	return p.id
}

func (p *Piece) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Piece) LineID() kernel.UUID {
	return p.lineID
}

func (p *Piece) Code() string {
	return p.code
}

// Sequence is the activation sequence within the line; 0 for replacements.
func (p *Piece) Sequence() int {
	return p.sequence
}

func (p *Piece) Status() Status {
	return p.status
}

func (p *Piece) EntryStation() kernel.UUID {
	return p.entryStation
}

func (p *Piece) CurrentStation() *kernel.UUID {
	return copyID(p.currentStation)
}

func (p *Piece) NeedsReplacement() bool {
	return p.needsReplacement
}

func (p *Piece) BrokenStation() *kernel.UUID {
	return copyID(p.brokenStation)
}

func (p *Piece) BrokenReason() string {
	return p.brokenReason
}

func (p *Piece) Replaces() *kernel.UUID {
	return copyID(p.replaces)
}

func (p *Piece) Replacement() *kernel.UUID {
	return copyID(p.replacement)
}

func (p *Piece) CreatedAt() time.Time {
	return p.createdAt
}

// State is the cached status and current station.
func (p *Piece) State() State {
	return State{Status: p.status, CurrentStation: copyID(p.currentStation)}
}

// NewEvents returns the log entries appended since the piece was loaded.
func (p *Piece) NewEvents() []Event {
	out := make([]Event, len(p.newEvents))
	copy(out, p.newEvents)
	return out
}

// ClearNewEvents is called by the repository once the log entries are stored.
func (p *Piece) ClearNewEvents() {
	p.newEvents = nil
}

// Pass records that the piece cleared station. next is where it goes now; nil means station
// was the last one and the piece becomes ready there.
func (p *Piece) Pass(station kernel.UUID, next *kernel.UUID, userID, notes string, now time.Time) error {
	if !p.status.Queued() {
		return p.stateConflict(fmt.Sprintf("cannot pass a %s piece", p.status))
	}
	if p.currentStation == nil || !p.currentStation.IsEqual(station) {
		return p.stateConflict(fmt.Sprintf("piece is not at station %s", station))
	}

	p.append(Pass, ptr(station), copyID(next), userID, notes, now)
	if next != nil {
		p.status, p.currentStation = InProgress, ptr(*next)
	} else {
		p.status = Ready
	}

	p.RaiseDomainEvent(newLifecycleEvent(PassedEventName, p, userID, now))
	return nil
}

// MarkBroken records breakage at station. Pieces that are waiting, in progress or ready can
// break; the piece then awaits a replacement.
func (p *Piece) MarkBroken(station kernel.UUID, userID, reason string, now time.Time) error {
	if !p.status.Queued() && p.status != Ready {
		return p.stateConflict(fmt.Sprintf("cannot break a %s piece", p.status))
	}

	reason = strings.TrimSpace(reason)
	p.append(Break, ptr(station), nil, userID, reason, now)
	p.status = Broken
	p.currentStation = ptr(station)
	p.brokenStation = ptr(station)
	p.brokenReason = reason
	p.needsReplacement = true

	p.RaiseDomainEvent(newLifecycleEvent(BrokenEventName, p, userID, now))
	return nil
}

// ResolveWith links a broken piece to its replacement and closes the replacement request.
func (p *Piece) ResolveWith(replacement *Piece, now time.Time) error {
	if p.status != Broken || !p.needsReplacement {
		return errs.NewConflictError("piece "+p.code, "replacement request is already resolved")
	}
	if err := replacement.Validate(); err != nil {
		return err
	}

	p.needsReplacement = false
	p.replacement = ptr(replacement.ID())

	p.RaiseDomainEvent(newLifecycleEvent(ReplacedEventName, p, "", now))
	return nil
}

// Deliver hands a ready piece over. station is the delivery station; when nil the current
// station is kept.
func (p *Piece) Deliver(station *kernel.UUID, userID, notes string, now time.Time) error {
	if p.status != Ready {
		return errs.NewConflictError("piece "+p.code, "not found in ready set")
	}

	p.append(Deliver, copyID(station), nil, userID, notes, now)
	p.status = Delivered
	if station != nil {
		p.currentStation = ptr(*station)
	}

	p.RaiseDomainEvent(newLifecycleEvent(DeliveredEventName, p, userID, now))
	return nil
}

// Reconcile overwrites the cache with the fold of the full log. It reports whether anything
// had drifted.
func (p *Piece) Reconcile(log []Event) bool {
	folded := Fold(p.entryStation, log)
	if folded.Equal(p.State()) {
		return false
	}
	p.status = folded.Status
	p.currentStation = folded.CurrentStation
	return true
}

func (p *Piece) append(typ EventType, station, next *kernel.UUID, userID, notes string, now time.Time) {
	p.newEvents = append(p.newEvents, RestoreEvent(kernel.NewUUID(), p.id, typ, station, next, userID, notes, now))
}

func (p *Piece) stateConflict(reason string) error {
	return errs.NewConflictError("piece "+p.code, reason)
}

func (p *Piece) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeIsRequired
	}
	p.code = code
	return nil
}

func validateID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
