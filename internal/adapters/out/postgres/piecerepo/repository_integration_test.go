package piecerepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/adapters/out/postgres/piecerepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type PieceRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *piecerepo.GormPieceRepository
	tracker    *MockAggregateTracker

	orderID kernel.UUID
	lineA   kernel.UUID
	lineB   kernel.UUID
	cut     kernel.UUID
	edge    kernel.UUID
}

func (suite *PieceRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *PieceRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Maybe()
	suite.repository = piecerepo.NewGormPieceRepository(suite.pg.DB, suite.tracker)

	suite.orderID, suite.lineA, suite.lineB = kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	suite.cut, suite.edge = kernel.NewUUID(), kernel.NewUUID()
}

func (suite *PieceRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *PieceRepositoryIntegrationTestSuite) TestUpdate_AppendsEventsInRecordingOrder() {
	ctx := context.Background()
	p := suite.add(suite.lineA, "ORD-A-1", 1)

	now := time.Now().UTC()
	suite.Require().NoError(p.Pass(suite.cut, &suite.edge, "u1", "", now))
	suite.Require().NoError(suite.repository.Update(ctx, p))
	suite.Empty(p.NewEvents())

	suite.Require().NoError(p.Pass(suite.edge, nil, "u2", "done", now))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	events, err := suite.repository.Events(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)
	suite.Equal(piece.Pass, events[0].Type())
	suite.True(events[0].NextStation().IsEqual(suite.edge))
	suite.Nil(events[1].NextStation())
	suite.Equal("done", events[1].Notes())

	got, err := suite.repository.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(piece.Ready, got.Status())
	suite.True(piece.Fold(got.EntryStation(), events).Equal(got.State()))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", p.ID(), p)
}

func (suite *PieceRepositoryIntegrationTestSuite) TestGetByCodeForUpdate_IsCaseInsensitive() {
	p := suite.add(suite.lineA, "ORD-A-1", 1)

	got, err := suite.repository.GetByCodeForUpdate(context.Background(), "ord-a-1")

	suite.Require().NoError(err)
	suite.Equal(p.ID(), got.ID())

	_, err = suite.repository.GetByCodeForUpdate(context.Background(), "ORD-A-9")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PieceRepositoryIntegrationTestSuite) TestCountOriginalByLine_IgnoresReplacements() {
	ctx := context.Background()
	original := suite.add(suite.lineA, "ORD-A-1", 1)
	suite.add(suite.lineA, "ORD-A-2", 2)
	suite.add(suite.lineB, "ORD-B-1", 1)

	replacement, err := piece.NewReplacement(kernel.NewUUID(), original, "ORD-A-1-R1", suite.cut, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, replacement))

	counts, err := suite.repository.CountOriginalByLine(ctx, suite.orderID)

	suite.Require().NoError(err)
	suite.Equal(map[kernel.UUID]int{suite.lineA: 2, suite.lineB: 1}, counts)

	codes, err := suite.repository.CodesWithRoot(ctx, "ORD-A-1")
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"ORD-A-1", "ORD-A-1-R1"}, codes)
}

func (suite *PieceRepositoryIntegrationTestSuite) TestLockReady_AcceptsReadyAliasesOldestFirst() {
	ctx := context.Background()
	first := suite.add(suite.lineA, "ORD-A-1", 1)
	second := suite.add(suite.lineA, "ORD-A-2", 2)
	suite.add(suite.lineA, "ORD-A-3", 3)

	suite.Require().NoError(suite.pg.DB.Exec("UPDATE pieces SET status = 'ready_for_delivery' WHERE id = ?", first.ID().Bytes()).Error)
	suite.Require().NoError(suite.pg.DB.Exec("UPDATE pieces SET status = 'Completed' WHERE id = ?", second.ID().Bytes()).Error)

	byLine, err := suite.repository.LockReadyByLines(ctx, suite.orderID, []kernel.UUID{suite.lineA})
	suite.Require().NoError(err)
	suite.Require().Len(byLine, 2)
	suite.Equal(first.ID(), byLine[0].ID())
	suite.Equal(piece.Ready, byLine[1].Status())

	byCode, err := suite.repository.LockReadyByCodes(ctx, suite.orderID, []string{"ord-a-2", "ORD-A-3"})
	suite.Require().NoError(err)
	suite.Require().Len(byCode, 1)
	suite.Equal(second.ID(), byCode[0].ID())
}

func (suite *PieceRepositoryIntegrationTestSuite) TestStatsAndQueue() {
	ctx := context.Background()
	now := time.Now().UTC()
	waiting := suite.add(suite.lineA, "ORD-A-1", 1)
	broken := suite.add(suite.lineA, "ORD-A-2", 2)
	delivered := suite.add(suite.lineB, "ORD-B-1", 1)

	suite.Require().NoError(broken.MarkBroken(suite.cut, "u1", "chipped", now))
	suite.Require().NoError(suite.repository.Update(ctx, broken))
	suite.Require().NoError(delivered.Pass(suite.cut, nil, "u1", "", now))
	suite.Require().NoError(delivered.Deliver(nil, "u1", "", now))
	suite.Require().NoError(suite.repository.Update(ctx, delivered))

	stats, err := suite.repository.Stats(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.Equal(2, stats.Summary.Total)
	suite.Equal(0, stats.Summary.Ready)
	suite.Equal(1, stats.Summary.Delivered)
	suite.Equal(1, stats.Summary.Remaining)
	suite.Equal(1, stats.AwaitingReplacement)

	queued, err := suite.repository.CountQueuedAt(ctx, suite.cut)
	suite.Require().NoError(err)
	suite.Equal(int64(1), queued)
	suite.Equal(piece.Waiting, waiting.Status())
}

func (suite *PieceRepositoryIntegrationTestSuite) TestPage_WalksByID() {
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		suite.add(suite.lineA, piece.Code("ORD", "A", i), i)
	}

	first, err := suite.repository.Page(ctx, nil, 3)
	suite.Require().NoError(err)
	suite.Require().Len(first, 3)

	last := first[2].ID()
	rest, err := suite.repository.Page(ctx, &last, 3)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 2)
	suite.Equal(-1, last.Compare(rest[0].ID()))
}

func (suite *PieceRepositoryIntegrationTestSuite) add(line kernel.UUID, code string, seq int) *piece.Piece {
	p, err := piece.NewPiece(kernel.NewUUID(), suite.orderID, line, code, seq, suite.cut, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return p
}

func TestPieceRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PieceRepositoryIntegrationTestSuite))
}
