package commands_test

import (
	"context"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStationRepository struct{ mock.Mock }

func (m *MockStationRepository) Add(ctx context.Context, s *station.Station) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStationRepository) Update(ctx context.Context, s *station.Station) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStationRepository) Get(ctx context.Context, id kernel.UUID) (*station.Station, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*station.Station), args.Error(1)
}

func (m *MockStationRepository) GetAll(ctx context.Context) ([]*station.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*station.Station), args.Error(1)
}

func (m *MockStationRepository) LockAll(ctx context.Context) ([]*station.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*station.Station), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type MockPieceRepository struct{ mock.Mock }

func (m *MockPieceRepository) Add(ctx context.Context, p *piece.Piece) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPieceRepository) Update(ctx context.Context, p *piece.Piece) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPieceRepository) Get(ctx context.Context, id kernel.UUID) (*piece.Piece, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*piece.Piece, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) GetByCodeForUpdate(ctx context.Context, code string) (*piece.Piece, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) CountOriginalByLine(ctx context.Context, orderID kernel.UUID) (map[kernel.UUID]int, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

func (m *MockPieceRepository) CodesWithRoot(ctx context.Context, root string) ([]string, error) {
	args := m.Called(ctx, root)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPieceRepository) LockReadyByLines(
	ctx context.Context, orderID kernel.UUID, lineIDs []kernel.UUID,
) ([]*piece.Piece, error) {
	args := m.Called(ctx, orderID, lineIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) LockReadyByCodes(
	ctx context.Context, orderID kernel.UUID, codes []string,
) ([]*piece.Piece, error) {
	args := m.Called(ctx, orderID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*piece.Piece), args.Error(1)
}

func (m *MockPieceRepository) CountQueuedAt(ctx context.Context, stationID kernel.UUID) (int64, error) {
	args := m.Called(ctx, stationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPieceRepository) Stats(ctx context.Context, orderID kernel.UUID) (ports.PieceStats, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.PieceStats), args.Error(1)
}

func (m *MockPieceRepository) Events(ctx context.Context, pieceID kernel.UUID) ([]piece.Event, error) {
	args := m.Called(ctx, pieceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]piece.Event), args.Error(1)
}

func (m *MockPieceRepository) Page(ctx context.Context, after *kernel.UUID, limit int) ([]*piece.Piece, error) {
	args := m.Called(ctx, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*piece.Piece), args.Error(1)
}

type MockDeliveryNoteRepository struct{ mock.Mock }

func (m *MockDeliveryNoteRepository) Add(ctx context.Context, note *delivery.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockDeliveryNoteRepository) NumbersForOrder(ctx context.Context, orderID kernel.UUID) ([]string, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDeliveryNoteRepository) NotesForOrder(ctx context.Context, orderID kernel.UUID) ([]delivery.NoteRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]delivery.NoteRecord), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) LockUnprocessed(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

type MockMessageBus struct{ mock.Mock }

func (m *MockMessageBus) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) StationRepository() ports.StationRepository {
	return m.Called().Get(0).(ports.StationRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PieceRepository() ports.PieceRepository {
	return m.Called().Get(0).(ports.PieceRepository)
}

func (m *MockUoW) DeliveryNoteRepository() ports.DeliveryNoteRepository {
	return m.Called().Get(0).(ports.DeliveryNoteRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	return m.Called().Get(0).(ports.OutboxRepository)
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type stationUoWFactory struct{ uow *MockUoW }

func (f stationUoWFactory) Create() commands.StationUoW { return f.uow }

type pieceUoWFactory struct{ uow *MockUoW }

func (f pieceUoWFactory) Create() commands.PieceUoW { return f.uow }

type deliveryUoWFactory struct{ uow *MockUoW }

func (f deliveryUoWFactory) Create() commands.DeliveryUoW { return f.uow }

type outboxUoWFactory struct{ uow *MockUoW }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.uow }

// fixture wires one MockUoW to a fresh mock of every repository. Begin and Rollback are
// expected on every handler run.
type fixture struct {
	uow      *MockUoW
	stations *MockStationRepository
	orders   *MockOrderRepository
	pieces   *MockPieceRepository
	notes    *MockDeliveryNoteRepository
	outbox   *MockOutboxRepository
}

func newFixture(ctx context.Context) *fixture {
	f := &fixture{
		uow:      new(MockUoW),
		stations: new(MockStationRepository),
		orders:   new(MockOrderRepository),
		pieces:   new(MockPieceRepository),
		notes:    new(MockDeliveryNoteRepository),
		outbox:   new(MockOutboxRepository),
	}

	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)
	f.uow.On("StationRepository").Return(f.stations).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("PieceRepository").Return(f.pieces).Maybe()
	f.uow.On("DeliveryNoteRepository").Return(f.notes).Maybe()
	f.uow.On("OutboxRepository").Return(f.outbox).Maybe()
	return f
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.uow.AssertExpectations(t)
	f.stations.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.pieces.AssertExpectations(t)
	f.notes.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
}
