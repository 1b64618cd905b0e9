package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStationsQueryHandler struct {
	db *gorm.DB
}

func NewListStationsQueryHandler(db *gorm.DB) ListStationsQueryHandler {
	return ListStationsQueryHandler{db: db}
}

// Handle returns delivery stations first, then production stations by stage order.
func (h ListStationsQueryHandler) Handle(ctx context.Context, query ListStationsQuery) ([]StationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stations := make([]StationView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.code,
			s.name,
			s.kind,
			s.stage_order,
			s.active,
			count(p.id)
		FROM stations s
		LEFT JOIN pieces p ON p.current_station_id = s.id AND p.status IN ?
		GROUP BY s.id
		ORDER BY s.kind, s.stage_order, s.code
	`, []string{string(piece.Waiting), string(piece.InProgress)}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view StationView
		var id uuid.UUID

		if err = rows.Scan(&id, &view.Code, &view.Name, &view.Kind, &view.StageOrder, &view.Active, &view.Queued); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		stations = append(stations, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}
