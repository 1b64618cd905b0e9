package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PieceHistoryQueryHandler struct {
	db *gorm.DB
}

func NewPieceHistoryQueryHandler(db *gorm.DB) PieceHistoryQueryHandler {
	return PieceHistoryQueryHandler{db: db}
}

func (h PieceHistoryQueryHandler) Handle(ctx context.Context, query PieceHistoryQuery) (PieceHistory, error) {
	if err := query.Validate(); err != nil {
		return PieceHistory{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		history PieceHistory
		status  string
		entry   uuid.UUID
		current uuid.NullUUID
	)
	err := db.Raw(`
		SELECT code, status, entry_station_id, current_station_id
		FROM pieces
		WHERE id = ?
	`, query.PieceID().Bytes()).Row().Scan(&history.Code, &status, &entry, &current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PieceHistory{}, errs.NewObjectNotFoundError("piece", query.PieceID().String())
		}
		return PieceHistory{}, err
	}

	history.PieceID = query.PieceID()
	history.Status = status
	if history.CurrentStation, err = nullableID(current); err != nil {
		return PieceHistory{}, err
	}

	entryID, err := kernel.UUIDFromBytes(entry[:])
	if err != nil {
		return PieceHistory{}, err
	}

	events, log, err := h.events(ctx, query.PieceID())
	if err != nil {
		return PieceHistory{}, err
	}
	history.Events = events

	folded := piece.Fold(entryID, log)
	history.Folded = FoldedState{Status: folded.Status.String(), CurrentStation: folded.CurrentStation}

	cached := piece.State{CurrentStation: history.CurrentStation}
	if cached.Status, err = piece.ParseStatus(status); err == nil {
		history.Consistent = folded.Equal(cached)
	}

	return history, nil
}

func (h PieceHistoryQueryHandler) events(ctx context.Context, pieceID kernel.UUID) ([]PieceEventView, []piece.Event, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.type,
			e.station_id,
			s.code,
			e.next_station_id,
			n.code,
			e.user_id,
			e.notes,
			e.occurred_at
		FROM piece_events e
		LEFT JOIN stations s ON s.id = e.station_id
		LEFT JOIN stations n ON n.id = e.next_station_id
		WHERE e.piece_id = ?
		ORDER BY e.seq
	`, pieceID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	views := make([]PieceEventView, 0)
	var log []piece.Event

	for rows.Next() {
		var (
			view                     PieceEventView
			id                       uuid.UUID
			stationID, nextStationID uuid.NullUUID
			stationCode, nextCode    sql.NullString
			userID, notes            sql.NullString
		)

		err = rows.Scan(&id, &view.Type, &stationID, &stationCode, &nextStationID, &nextCode, &userID, &notes, &view.At)
		if err != nil {
			return nil, nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, nil, err
		}
		if view.StationID, err = nullableID(stationID); err != nil {
			return nil, nil, err
		}
		if view.NextStationID, err = nullableID(nextStationID); err != nil {
			return nil, nil, err
		}
		view.StationCode, view.NextStationCode = stationCode.String, nextCode.String
		view.UserID, view.Notes = userID.String, notes.String
		views = append(views, view)

		typ, typErr := piece.ParseEventType(view.Type)
		if typErr != nil {
			return nil, nil, typErr
		}
		log = append(log, piece.RestoreEvent(view.ID, pieceID, typ, view.StationID, view.NextStationID, view.UserID, view.Notes, view.At))
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return views, log, nil
}

func nullableID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
