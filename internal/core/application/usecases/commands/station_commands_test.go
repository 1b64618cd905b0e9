package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/station"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAddStationCommand(t *testing.T) {
	zero := 0
	_, err := commands.NewAddStationCommand("", "", "robot", &zero)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewAddStationCommand("qc", "Quality", "", nil)
	require.NoError(t, err)
	assert.Equal(t, station.Production, cmd.Kind())
}

func TestAddStationCommandHandler_Handle(t *testing.T) {
	t.Run("should append after the last station", func(t *testing.T) {
		ctx := t.Context()
		existing := productionStations(t, "CUT", "EDGE")
		cmd, err := commands.NewAddStationCommand("qc", "Quality", "production", nil)
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return(existing, nil).Once()
		f.stations.On("Add", ctx, mock.MatchedBy(func(s *station.Station) bool {
			return s.Code() == "QC" && s.StageOrder() == 3 && s.IsActive()
		})).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		s, err := commands.NewAddStationCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 3, s.StageOrder())
		f.assertExpectations(t)
	})

	t.Run("should reject a second delivery station", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewAddStationCommand("dock2", "Dock 2", "delivery", nil)
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return([]*station.Station{deliveryStation(t)}, nil).Once()

		_, err = commands.NewAddStationCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
		f.stations.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func TestUpdateStationCommandHandler_Handle(t *testing.T) {
	off, on := false, true

	t.Run("should refuse to deactivate a station with queued pieces", func(t *testing.T) {
		ctx := t.Context()
		stations := productionStations(t, "CUT", "EDGE")
		cmd, err := commands.NewUpdateStationCommand(stations[0].ID(), nil, &off)
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return(stations, nil).Once()
		f.pieces.On("CountQueuedAt", ctx, stations[0].ID()).Return(int64(4), nil).Once()

		_, err = commands.NewUpdateStationCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, stations[0].IsActive())
	})

	t.Run("should rename and deactivate an empty station", func(t *testing.T) {
		ctx := t.Context()
		stations := productionStations(t, "CUT", "EDGE")
		name := "Edge grinding"
		cmd, err := commands.NewUpdateStationCommand(stations[1].ID(), &name, &off)
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return(stations, nil).Once()
		f.pieces.On("CountQueuedAt", ctx, stations[1].ID()).Return(int64(0), nil).Once()
		f.stations.On("Update", ctx, stations[1]).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		s, err := commands.NewUpdateStationCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Edge grinding", s.Name())
		assert.False(t, s.IsActive())
		f.assertExpectations(t)
	})

	t.Run("should refuse to activate onto a taken stage order", func(t *testing.T) {
		ctx := t.Context()
		stations := productionStations(t, "CUT")
		old, err := station.RestoreStation(kernel.NewUUID(), "SAW", "Saw", station.Production, 1, false)
		require.NoError(t, err)
		cmd, err := commands.NewUpdateStationCommand(old.ID(), nil, &on)
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return(append(stations, old), nil).Once()

		_, err = commands.NewUpdateStationCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should require a change", func(t *testing.T) {
		_, err := commands.NewUpdateStationCommand(kernel.NewUUID(), nil, nil)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestReorderStationsCommandHandler_Handle(t *testing.T) {
	t.Run("should renumber every production station", func(t *testing.T) {
		ctx := t.Context()
		stations := productionStations(t, "CUT", "EDGE", "TEMPER")
		cmd, err := commands.NewReorderStationsCommand([]kernel.UUID{stations[2].ID(), stations[0].ID(), stations[1].ID()})
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return(stations, nil).Once()
		f.stations.On("Update", ctx, mock.Anything).Return(nil).Times(3)
		f.uow.On("Commit", ctx).Return(nil).Once()

		pipeline, err := commands.NewReorderStationsCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		require.NoError(t, err)
		require.Len(t, pipeline, 3)
		assert.Equal(t, []string{"TEMPER", "CUT", "EDGE"}, []string{pipeline[0].Code(), pipeline[1].Code(), pipeline[2].Code()})
		f.assertExpectations(t)
	})

	t.Run("should reject a partial list without writes", func(t *testing.T) {
		ctx := t.Context()
		stations := productionStations(t, "CUT", "EDGE")
		cmd, err := commands.NewReorderStationsCommand([]kernel.UUID{stations[1].ID()})
		require.NoError(t, err)

		f := newFixture(ctx)
		f.stations.On("LockAll", ctx).Return(stations, nil).Once()

		_, err = commands.NewReorderStationsCommandHandler(stationUoWFactory{f.uow}).Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		f.stations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
