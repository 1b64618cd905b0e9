package queries

import (
	"context"
	"database/sql"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListBrokenPiecesQueryHandler struct {
	db *gorm.DB
}

func NewListBrokenPiecesQueryHandler(db *gorm.DB) ListBrokenPiecesQueryHandler {
	return ListBrokenPiecesQueryHandler{db: db}
}

// Handle returns the replacement worklist, oldest breakage first. Who broke the piece and
// when comes from its latest BROKEN log entry.
func (h ListBrokenPiecesQueryHandler) Handle(ctx context.Context, query ListBrokenPiecesQuery) ([]BrokenPieceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]BrokenPieceView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.code,
			o.id,
			o.number,
			o.customer,
			l.code,
			l.size,
			l.type,
			s.code,
			p.broken_reason,
			e.user_id,
			COALESCE(e.occurred_at, p.created_at)
		FROM pieces p
		JOIN orders o ON o.id = p.order_id
		JOIN order_lines l ON l.id = p.line_id
		LEFT JOIN stations s ON s.id = p.broken_station_id
		LEFT JOIN LATERAL (
			SELECT pe.user_id, pe.occurred_at
			FROM piece_events pe
			WHERE pe.piece_id = p.id AND pe.type = ?
			ORDER BY pe.seq DESC
			LIMIT 1
		) e ON true
		WHERE p.status = ? AND p.needs_replacement
		ORDER BY 12, p.code
	`, string(piece.Break), string(piece.Broken)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view BrokenPieceView
		var pieceID, orderID uuid.UUID
		var stationCode, userID sql.NullString

		err = rows.Scan(
			&pieceID,
			&view.Code,
			&orderID,
			&view.OrderNumber,
			&view.Customer,
			&view.LineCode,
			&view.Size,
			&view.Type,
			&stationCode,
			&view.Reason,
			&userID,
			&view.BrokenAt,
		)
		if err != nil {
			return nil, err
		}

		if view.PieceID, err = kernel.UUIDFromBytes(pieceID[:]); err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		view.StationCode = stationCode.String
		view.BrokenBy = userID.String
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
