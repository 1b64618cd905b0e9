package services

import (
	"strings"
	"time"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
)

// DeliveryReconciler resolves which ready pieces a delivery takes and hands them over.
// Any shortfall rejects the whole delivery.
type DeliveryReconciler struct{}

func NewDeliveryReconciler() DeliveryReconciler {
	return DeliveryReconciler{}
}

// SelectGroup takes the first sel.Qty of candidates, which must be the ready pieces
// matching sel ordered oldest first.
func (r DeliveryReconciler) SelectGroup(sel delivery.Selector, candidates []*piece.Piece) ([]*piece.Piece, error) {
	ready := make([]*piece.Piece, 0, len(candidates))
	for _, p := range candidates {
		if p.Status() == piece.Ready {
			ready = append(ready, p)
		}
	}
	if len(ready) < sel.Qty {
		return nil, delivery.ShortfallError(sel, len(ready))
	}
	return ready[:sel.Qty], nil
}

// SelectCodes resolves every code, case-insensitively, to a ready piece of orderID.
func (r DeliveryReconciler) SelectCodes(orderID kernel.UUID, codes []string, candidates []*piece.Piece) ([]*piece.Piece, error) {
	byCode := make(map[string]*piece.Piece, len(candidates))
	for _, p := range candidates {
		if p.Status() == piece.Ready && p.OrderID().IsEqual(orderID) {
			byCode[strings.ToLower(p.Code())] = p
		}
	}

	var (
		selected []*piece.Piece
		missing  []string
		seen     = make(map[string]struct{}, len(codes))
	)
	for _, code := range codes {
		key := strings.ToLower(strings.TrimSpace(code))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		p, ok := byCode[key]
		if !ok {
			missing = append(missing, code)
			continue
		}
		selected = append(selected, p)
	}

	if len(missing) > 0 {
		return nil, delivery.MissingPiecesError(missing)
	}
	if len(selected) == 0 {
		return nil, delivery.ErrNoPieces
	}
	return selected, nil
}

// Deliver hands pieces over on note, stamping dock when a delivery station is configured.
func (r DeliveryReconciler) Deliver(
	note *delivery.Note,
	pieces []*piece.Piece,
	dock *kernel.UUID,
	userID string,
	now time.Time,
) error {
	if err := note.Validate(); err != nil {
		return err
	}
	if len(pieces) == 0 {
		return delivery.ErrNoPieces
	}

	for _, p := range pieces {
		if err := note.AddPiece(p.ID()); err != nil {
			return err
		}
		if err := p.Deliver(dock, userID, note.Number(), now); err != nil {
			return err
		}
	}
	return nil
}
