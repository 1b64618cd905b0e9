package piecerepo

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPieceRepository implements ports.PieceRepository using GORM.
type GormPieceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPieceRepository(db *gorm.DB, tracker aggregateTracker) *GormPieceRepository {
	return &GormPieceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add stores a new piece and any log entries it already carries.
func (r *GormPieceRepository) Add(ctx context.Context, p *piece.Piece) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("piece "+p.Code(), "code is already in use", err)
		}
		return err
	}

	if err := r.appendEvents(ctx, p); err != nil {
		return err
	}

	r.tracker.TrackAggregate(p.ID(), p)
	return nil
}

// Update stores the cached state and appends the log entries recorded since load.
func (r *GormPieceRepository) Update(ctx context.Context, p *piece.Piece) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).Model(&PieceDTO{}).Where("id = ?", dto.ID).Select("*").Omit("seq").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("piece", p.ID().String())
	}

	if err := r.appendEvents(ctx, p); err != nil {
		return err
	}

	r.tracker.TrackAggregate(p.ID(), p)
	return nil
}

func (r *GormPieceRepository) Get(ctx context.Context, id kernel.UUID) (*piece.Piece, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormPieceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*piece.Piece, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.locked(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormPieceRepository) GetByCodeForUpdate(ctx context.Context, code string) (*piece.Piece, error) {
	return r.first(r.locked(ctx), code, "lower(code) = lower(?)", code)
}

func (r *GormPieceRepository) CountOriginalByLine(ctx context.Context, orderID kernel.UUID) (map[kernel.UUID]int, error) {
	var rows []struct {
		LineID uuid.UUID
		Count  int
	}
	err := r.db.WithContext(ctx).
		Model(&PieceDTO{}).
		Select("line_id, count(*) AS count").
		Where("order_id = ? AND replaces_id IS NULL", orderID.Bytes()).
		Group("line_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[kernel.UUID]int, len(rows))
	for _, row := range rows {
		lineID, idErr := kernel.UUIDFromBytes(row.LineID[:])
		if idErr != nil {
			return nil, idErr
		}
		counts[lineID] = row.Count
	}

	return counts, nil
}

// CodesWithRoot matches root itself and codes starting with root-R. Callers filter the
// exact replacement suffix.
func (r *GormPieceRepository) CodesWithRoot(ctx context.Context, root string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&PieceDTO{}).
		Where("lower(code) = lower(?) OR lower(code) LIKE lower(?)", root, root+"-R%").
		Order("code").
		Pluck("code", &codes).Error
	return codes, err
}

func (r *GormPieceRepository) LockReadyByLines(
	ctx context.Context,
	orderID kernel.UUID,
	lineIDs []kernel.UUID,
) ([]*piece.Piece, error) {
	raw := make([]uuid.UUID, 0, len(lineIDs))
	for _, id := range lineIDs {
		raw = append(raw, id.Bytes())
	}

	return r.find(r.locked(ctx).
		Where("order_id = ? AND line_id IN ? AND lower(status) IN ?", orderID.Bytes(), raw, piece.ReadySetNames).
		Order("created_at, seq"))
}

func (r *GormPieceRepository) LockReadyByCodes(
	ctx context.Context,
	orderID kernel.UUID,
	codes []string,
) ([]*piece.Piece, error) {
	lowered := make([]string, 0, len(codes))
	for _, c := range codes {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(c)))
	}

	return r.find(r.locked(ctx).
		Where("order_id = ? AND lower(code) IN ? AND lower(status) IN ?", orderID.Bytes(), lowered, piece.ReadySetNames).
		Order("created_at, seq"))
}

func (r *GormPieceRepository) CountQueuedAt(ctx context.Context, stationID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PieceDTO{}).
		Where("current_station_id = ? AND status IN ?", stationID.Bytes(), []string{string(piece.Waiting), string(piece.InProgress)}).
		Count(&count).Error
	return count, err
}

func (r *GormPieceRepository) Stats(ctx context.Context, orderID kernel.UUID) (ports.PieceStats, error) {
	var row struct {
		Total               int
		Ready               int
		Delivered           int
		AwaitingReplacement int
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			count(*) FILTER (WHERE status <> ?) AS total,
			count(*) FILTER (WHERE lower(status) IN ?) AS ready,
			count(*) FILTER (WHERE status = ?) AS delivered,
			count(*) FILTER (WHERE status = ? AND needs_replacement) AS awaiting_replacement
		FROM pieces
		WHERE order_id = ?
	`, string(piece.Broken), piece.ReadySetNames, string(piece.Delivered), string(piece.Broken), orderID.Bytes()).Scan(&row).Error
	if err != nil {
		return ports.PieceStats{}, err
	}

	return ports.PieceStats{
		Summary:             delivery.NewSummary(row.Total, row.Ready, row.Delivered),
		AwaitingReplacement: row.AwaitingReplacement,
	}, nil
}

func (r *GormPieceRepository) Events(ctx context.Context, pieceID kernel.UUID) ([]piece.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).Where("piece_id = ?", pieceID.Bytes()).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]piece.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}

func (r *GormPieceRepository) Page(ctx context.Context, after *kernel.UUID, limit int) ([]*piece.Piece, error) {
	db := r.db.WithContext(ctx).Order("id").Limit(limit)
	if after != nil {
		db = db.Where("id > ?", after.Bytes())
	}
	return r.find(db)
}

func (r *GormPieceRepository) appendEvents(ctx context.Context, p *piece.Piece) error {
	events := p.NewEvents()
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventFromDomain(e))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	p.ClearNewEvents()
	return nil
}

func (r *GormPieceRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *GormPieceRepository) first(db *gorm.DB, label string, where string, arg any) (*piece.Piece, error) {
	var dto PieceDTO
	if err := db.First(&dto, where, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("piece", label)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormPieceRepository) find(db *gorm.DB) ([]*piece.Piece, error) {
	var dtos []PieceDTO
	if err := db.Find(&dtos).Error; err != nil {
		return nil, err
	}

	pieces := make([]*piece.Piece, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
	}
	return pieces, nil
}
