package ports

import (
	"context"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
)

// DeliveryNoteRepository persists delivery notes with their piece links.
type DeliveryNoteRepository interface {
	// Add stores the note and one link per piece. A piece already linked to a note is a
	// conflict.
	Add(ctx context.Context, note *delivery.Note) error

	// NumbersForOrder returns the numbers of every note of the order.
	NumbersForOrder(ctx context.Context, orderID kernel.UUID) ([]string, error)

	// NotesForOrder returns every note of the order oldest first, each with its piece codes in
	// the order the pieces were created.
	NotesForOrder(ctx context.Context, orderID kernel.UUID) ([]delivery.NoteRecord, error)
}
