package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StationQueueQueryHandler struct {
	db *gorm.DB
}

func NewStationQueueQueryHandler(db *gorm.DB) StationQueueQueryHandler {
	return StationQueueQueryHandler{db: db}
}

// Handle returns the queue first in, first out. Reads take no locks: a piece in the
// result may have moved on by the time it is passed, which recordPass re-checks.
func (h StationQueueQueryHandler) Handle(ctx context.Context, query StationQueueQuery) ([]QueueItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items := make([]QueueItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.code,
			p.status,
			o.number,
			l.code,
			l.size,
			l.type,
			p.replaces_id IS NOT NULL,
			p.created_at
		FROM pieces p
		JOIN orders o ON o.id = p.order_id
		JOIN order_lines l ON l.id = p.line_id
		WHERE p.current_station_id = ? AND p.status IN ?
		ORDER BY p.created_at, p.seq
	`, query.StationID().Bytes(), []string{string(piece.Waiting), string(piece.InProgress)}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item QueueItem
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.Code,
			&item.Status,
			&item.OrderNumber,
			&item.LineCode,
			&item.Size,
			&item.Type,
			&item.Replacement,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if item.PieceID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
