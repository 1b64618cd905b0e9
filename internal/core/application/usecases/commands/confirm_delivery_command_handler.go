package commands

import (
	"context"
	"strings"
	"time"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

type ConfirmDeliveryResult struct {
	OrderID        kernel.UUID
	NoteID         kernel.UUID
	NoteNumber     string
	DeliveredCount int
	Summary        delivery.Summary
	OrderCompleted bool
	History        []delivery.NoteRecord
}

// ConfirmDeliveryCommandHandler reconciles a delivery against the ready pieces of an order.
//
// Everything happens in one transaction: the order row is locked first, which serializes
// note numbering per order, then the selected pieces are locked. Any shortfall rolls back the
// note together with every piece change.
type ConfirmDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewConfirmDeliveryCommandHandler(uowFactory DeliveryUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context,
	command ConfirmDeliveryCommand,
) (ConfirmDeliveryResult, error) {
	if err := command.Validate(); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	input := command.Input()
	orderRepo := uow.OrderRepository()
	pieceRepo := uow.PieceRepository()
	noteRepo := uow.DeliveryNoteRepository()

	o, err := orderRepo.GetByNumberForUpdate(ctx, input.OrderNumber)
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	stations, err := uow.StationRepository().GetAll(ctx)
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}
	var dock *kernel.UUID
	if s := station.NewRegistry(stations).DeliveryStation(); s != nil {
		id := s.ID()
		dock = &id
	}

	numbers, err := noteRepo.NumbersForOrder(ctx, o.ID())
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}
	number, err := noteNumber(input.NoteNumber, numbers)
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	now := time.Now().UTC()
	note, err := delivery.NewNote(kernel.NewUUID(), o.ID(), number, input.Driver, input.Notes, input.UserID, now)
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	var selected []*piece.Piece
	switch command.Mode() {
	case delivery.Grouped:
		selected, err = h.selectGroups(ctx, pieceRepo, o, command.Selectors())
	case delivery.Pieces:
		var candidates []*piece.Piece
		candidates, err = pieceRepo.LockReadyByCodes(ctx, o.ID(), command.Codes())
		if err == nil {
			selected, err = services.NewDeliveryReconciler().SelectCodes(o.ID(), command.Codes(), candidates)
		}
	}
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	if err = services.NewDeliveryReconciler().Deliver(note, selected, dock, input.UserID, now); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	if err = noteRepo.Add(ctx, note); err != nil {
		return ConfirmDeliveryResult{}, err
	}
	for _, p := range selected {
		if err = pieceRepo.Update(ctx, p); err != nil {
			return ConfirmDeliveryResult{}, err
		}
	}

	stats, err := pieceRepo.Stats(ctx, o.ID())
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	completed := false
	if o.Status() == order.Active && stats.AwaitingReplacement == 0 && stats.Summary.Fulfilled(o.RequestedUnits()) {
		if completed, err = o.Complete(now); err != nil {
			return ConfirmDeliveryResult{}, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return ConfirmDeliveryResult{}, err
		}
	}

	history, err := noteRepo.NotesForOrder(ctx, o.ID())
	if err != nil {
		return ConfirmDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmDeliveryResult{}, err
	}

	return ConfirmDeliveryResult{
		OrderID:        o.ID(),
		NoteID:         note.ID(),
		NoteNumber:     note.Number(),
		DeliveredCount: len(selected),
		Summary:        stats.Summary,
		OrderCompleted: completed,
		History:        history,
	}, nil
}

// selectGroups resolves every selector independently. A piece taken by one selector is not
// offered to the next.
func (h ConfirmDeliveryCommandHandler) selectGroups(
	ctx context.Context,
	pieceRepo ports.PieceRepository,
	o *order.Order,
	selectors []delivery.Selector,
) ([]*piece.Piece, error) {
	reconciler := services.NewDeliveryReconciler()
	taken := make(map[kernel.UUID]struct{})

	var selected []*piece.Piece
	for _, sel := range selectors {
		var lineIDs []kernel.UUID
		for _, l := range o.Lines() {
			if l.Matches(sel.LineCode, sel.Size, sel.Type) {
				lineIDs = append(lineIDs, l.ID())
			}
		}
		if len(lineIDs) == 0 {
			return nil, delivery.ShortfallError(sel, 0)
		}

		candidates, err := pieceRepo.LockReadyByLines(ctx, o.ID(), lineIDs)
		if err != nil {
			return nil, err
		}

		free := candidates[:0]
		for _, p := range candidates {
			if _, ok := taken[p.ID()]; !ok {
				free = append(free, p)
			}
		}

		picked, err := reconciler.SelectGroup(sel, free)
		if err != nil {
			return nil, err
		}
		for _, p := range picked {
			taken[p.ID()] = struct{}{}
		}
		selected = append(selected, picked...)
	}

	return selected, nil
}

func noteNumber(requested string, existing []string) (string, error) {
	if requested == "" {
		return delivery.NextNoteNumber(existing), nil
	}
	for _, n := range existing {
		if strings.EqualFold(n, requested) {
			return "", errs.NewConflictError("delivery note "+requested, "number is already used for this order")
		}
	}
	return requested, nil
}
