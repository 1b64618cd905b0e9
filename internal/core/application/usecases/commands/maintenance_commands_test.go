package commands_test

import (
	"errors"
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRebuildPieceStateCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	stations := productionStations(t, "CUT", "EDGE")
	o := activeOrder(t, 2)
	line := o.Lines()[0]

	healthy := waitingPiece(t, o, line, 1, stations[0])
	drifted := waitingPiece(t, o, line, 2, stations[0])
	log := []piece.Event{
		piece.RestoreEvent(kernel.NewUUID(), drifted.ID(), piece.Pass, ptrID(stations[0].ID()), ptrID(stations[1].ID()), "u1", "", testNow),
	}

	cmd, err := commands.NewRebuildPieceStateCommand(2)
	require.NoError(t, err)

	f := newFixture(ctx)
	f.pieces.On("Page", ctx, (*kernel.UUID)(nil), 2).Return([]*piece.Piece{healthy, drifted}, nil).Once()
	f.pieces.On("Page", ctx, mock.MatchedBy(func(after *kernel.UUID) bool {
		return after != nil && after.IsEqual(drifted.ID())
	}), 2).Return([]*piece.Piece{}, nil).Once()
	f.pieces.On("Events", ctx, healthy.ID()).Return([]piece.Event{}, nil).Once()
	f.pieces.On("Events", ctx, drifted.ID()).Return(log, nil).Twice()

	locked, err := piece.RestorePiece(drifted.Snapshot())
	require.NoError(t, err)
	f.pieces.On("GetForUpdate", ctx, drifted.ID()).Return(locked, nil).Once()
	f.pieces.On("Update", ctx, locked).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	result, err := commands.NewRebuildPieceStateCommandHandler(pieceUoWFactory{f.uow}).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, []string{locked.Code()}, result.Repaired)
	assert.Equal(t, piece.InProgress, locked.Status())
	assert.True(t, locked.CurrentStation().IsEqual(stations[1].ID()))
	f.assertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle(t *testing.T) {
	msg := func(name string) ports.OutboxMessage {
		return ports.OutboxMessage{ID: kernel.NewUUID(), AggregateID: kernel.NewUUID(), Name: name, Payload: []byte(`{}`)}
	}

	t.Run("should publish and acknowledge every message", func(t *testing.T) {
		ctx := t.Context()
		batch := []ports.OutboxMessage{msg("piece.created"), msg("piece.passed")}
		bus := new(MockMessageBus)

		f := newFixture(ctx)
		f.outbox.On("LockUnprocessed", ctx, 10).Return(batch, nil).Once()
		bus.On("Publish", ctx, batch[0]).Return(nil).Once()
		bus.On("Publish", ctx, batch[1]).Return(nil).Once()
		f.outbox.On("MarkProcessed", ctx, []kernel.UUID{batch[0].ID, batch[1].ID}, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewPublishOutboxCommand(10)
		require.NoError(t, err)
		n, err := commands.NewPublishOutboxCommandHandler(outboxUoWFactory{f.uow}, bus).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		bus.AssertExpectations(t)
		f.assertExpectations(t)
	})

	t.Run("should stop at the first failure and keep what was sent", func(t *testing.T) {
		ctx := t.Context()
		batch := []ports.OutboxMessage{msg("piece.created"), msg("piece.passed"), msg("piece.broken")}
		bus := new(MockMessageBus)

		f := newFixture(ctx)
		f.outbox.On("LockUnprocessed", ctx, 10).Return(batch, nil).Once()
		bus.On("Publish", ctx, batch[0]).Return(nil).Once()
		bus.On("Publish", ctx, batch[1]).Return(errors.New("broker down")).Once()
		f.outbox.On("MarkProcessed", ctx, []kernel.UUID{batch[0].ID}, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewPublishOutboxCommand(10)
		require.NoError(t, err)
		n, err := commands.NewPublishOutboxCommandHandler(outboxUoWFactory{f.uow}, bus).Handle(ctx, cmd)

		assert.ErrorContains(t, err, "broker down")
		assert.Equal(t, 1, n)
		bus.AssertNotCalled(t, "Publish", ctx, batch[2])
	})
}

func ptrID(id kernel.UUID) *kernel.UUID {
	return &id
}
