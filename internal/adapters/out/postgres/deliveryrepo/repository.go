package deliveryrepo

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryNoteRepository implements ports.DeliveryNoteRepository using GORM.
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// Add inserts the note, then its piece links. Links are inserted explicitly so that a piece
// already on another note fails the insert instead of being skipped as an existing row.
func (r *GormDeliveryNoteRepository) Add(ctx context.Context, note *delivery.Note) error {
	if err := note.Validate(); err != nil {
		return err
	}
	if len(note.Pieces()) == 0 {
		return delivery.ErrNoPieces
	}

	dto := fromDomain(note)
	links := dto.Pieces
	dto.Pieces = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("delivery note "+note.Number(), "note number is already used for this order", err)
		}
		return err
	}

	if err := db.Create(&links).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("delivery note "+note.Number(), "a piece is already on another delivery note", err)
		}
		return err
	}

	return nil
}

func (r *GormDeliveryNoteRepository) NumbersForOrder(ctx context.Context, orderID kernel.UUID) ([]string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&NoteDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at").
		Pluck("number", &numbers).Error
	return numbers, err
}

// NotesForOrder runs on the repository's connection. Inside a unit of work it includes the
// note just added.
func (r *GormDeliveryNoteRepository) NotesForOrder(ctx context.Context, orderID kernel.UUID) ([]delivery.NoteRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
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

	records := make([]delivery.NoteRecord, 0)
	for rows.Next() {
		var (
			record                   delivery.NoteRecord
			id                       uuid.UUID
			driver, notes, createdBy sql.NullString
			codes                    pq.StringArray
		)
		if err = rows.Scan(&id, &record.Number, &driver, &notes, &createdBy, &record.CreatedAt, &codes); err != nil {
			return nil, err
		}

		if record.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		record.Driver, record.Notes, record.CreatedBy = driver.String, notes.String, createdBy.String
		record.PieceCodes = []string(codes)
		records = append(records, record)
	}

	return records, rows.Err()
}
