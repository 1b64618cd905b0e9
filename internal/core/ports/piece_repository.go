package ports

import (
	"context"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
)

// PieceStats are the counters the order completion rule looks at.
type PieceStats struct {
	Summary             delivery.Summary
	AwaitingReplacement int
}

// PieceRepository persists pieces and appends their event log. Add and Update also insert
// the piece's new log entries, so the cached state and the log change together.
type PieceRepository interface {
	Add(ctx context.Context, p *piece.Piece) error

	Update(ctx context.Context, p *piece.Piece) error

	Get(ctx context.Context, id kernel.UUID) (*piece.Piece, error)

	// GetForUpdate loads the piece and locks its row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*piece.Piece, error)

	// GetByCodeForUpdate loads the piece by code, case-insensitively, and locks its row.
	GetByCodeForUpdate(ctx context.Context, code string) (*piece.Piece, error)

	// CountOriginalByLine returns, per line of the order, how many pieces activation has
	// created. Replacements are not counted.
	CountOriginalByLine(ctx context.Context, orderID kernel.UUID) (map[kernel.UUID]int, error)

	// CodesWithRoot returns the codes of root and of every replacement issued for it.
	CodesWithRoot(ctx context.Context, root string) ([]string, error)

	// LockReadyByLines returns the ready pieces of the given lines, oldest first, locked.
	LockReadyByLines(ctx context.Context, orderID kernel.UUID, lineIDs []kernel.UUID) ([]*piece.Piece, error)

	// LockReadyByCodes returns the ready pieces of the order among codes, locked.
	LockReadyByCodes(ctx context.Context, orderID kernel.UUID, codes []string) ([]*piece.Piece, error)

	// CountQueuedAt counts waiting and in-progress pieces at a station.
	CountQueuedAt(ctx context.Context, stationID kernel.UUID) (int64, error)

	Stats(ctx context.Context, orderID kernel.UUID) (PieceStats, error)

	// Events returns the full log of a piece in recording order.
	Events(ctx context.Context, pieceID kernel.UUID) ([]piece.Event, error)

	// Page returns up to limit pieces ordered by id, starting after the given id.
	Page(ctx context.Context, after *kernel.UUID, limit int) ([]*piece.Piece, error)
}
