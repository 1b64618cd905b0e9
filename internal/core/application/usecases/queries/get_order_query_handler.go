package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/piece"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its lines, piece summary and delivery note history.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var (
		view   OrderView
		id     uuid.UUID
		due    sql.NullTime
		status int
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, number, customer, delivery_date, status, created_at
		FROM orders
		WHERE number = ?
	`, query.Number()).Row().Scan(&id, &view.Number, &view.Customer, &due, &status, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.Number())
		}
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if due.Valid {
		view.DeliveryDate = &due.Time
	}
	view.Status = order.Status(status).String()

	if view.Lines, err = h.lines(ctx, view.ID); err != nil {
		return OrderView{}, err
	}
	if view.Summary, err = h.summary(ctx, view.ID); err != nil {
		return OrderView{}, err
	}
	if view.Deliveries, err = NewDeliveryHistory(h.db).ForOrder(ctx, view.ID); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

func (h GetOrderQueryHandler) lines(ctx context.Context, orderID kernel.UUID) ([]LineView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.code,
			l.quantity,
			l.size,
			l.type,
			l.notes,
			count(p.id) FILTER (WHERE p.replaces_id IS NULL),
			count(p.id) FILTER (WHERE lower(p.status) IN ?),
			count(p.id) FILTER (WHERE p.status = ?),
			count(p.id) FILTER (WHERE p.status = ?)
		FROM order_lines l
		LEFT JOIN pieces p ON p.line_id = l.id
		WHERE l.order_id = ?
		GROUP BY l.id
		ORDER BY l.position
	`, piece.ReadySetNames, string(piece.Delivered), string(piece.Broken), orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]LineView, 0)
	for rows.Next() {
		var line LineView
		var id uuid.UUID
		var size, typ, notes sql.NullString

		err = rows.Scan(&id, &line.Code, &line.Quantity, &size, &typ, &notes,
			&line.Activated, &line.Ready, &line.Delivered, &line.Broken)
		if err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		line.Size, line.Type, line.Notes = size.String, typ.String, notes.String
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) summary(ctx context.Context, orderID kernel.UUID) (delivery.Summary, error) {
	var total, ready, delivered int
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			count(*) FILTER (WHERE status <> ?),
			count(*) FILTER (WHERE lower(status) IN ?),
			count(*) FILTER (WHERE status = ?)
		FROM pieces
		WHERE order_id = ?
	`, string(piece.Broken), piece.ReadySetNames, string(piece.Delivered), orderID.Bytes()).
		Row().Scan(&total, &ready, &delivered)
	if err != nil {
		return delivery.Summary{}, err
	}

	return delivery.NewSummary(total, ready, delivered), nil
}

// DeliveryHistory reads the delivery notes of an order with the codes each one handed over.
type DeliveryHistory struct {
	db *gorm.DB
}

func NewDeliveryHistory(db *gorm.DB) DeliveryHistory {
	return DeliveryHistory{db: db}
}

// ForOrder returns the notes oldest first.
func (h DeliveryHistory) ForOrder(ctx context.Context, orderID kernel.UUID) ([]DeliveryNoteView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			n.id,
			n.number,
			n.driver,
			n.notes,
			n.created_by,
			n.created_at,
			COALESCE(array_agg(p.code ORDER BY p.created_at, p.seq) FILTER (WHERE p.id IS NOT NULL), '{}')::text
		FROM delivery_notes n
		LEFT JOIN delivery_pieces dp ON dp.note_id = n.id
		LEFT JOIN pieces p ON p.id = dp.piece_id
		WHERE n.order_id = ?
		GROUP BY n.id
		ORDER BY n.created_at, n.number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]DeliveryNoteView, 0)
	for rows.Next() {
		var note DeliveryNoteView
		var id uuid.UUID
		var driver, text, createdBy sql.NullString
		var codes pq.StringArray

		if err = rows.Scan(&id, &note.Number, &driver, &text, &createdBy, &note.CreatedAt, &codes); err != nil {
			return nil, err
		}

		if note.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		note.Driver, note.Notes, note.CreatedBy = driver.String, text.String, createdBy.String
		note.PieceCodes = []string(codes)
		notes = append(notes, note)
	}

	return notes, rows.Err()
}
