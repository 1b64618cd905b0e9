package services_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/station"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newPipeline(t *testing.T, codes ...string) (station.Pipeline, []*station.Station) {
	t.Helper()
	stations := make([]*station.Station, 0, len(codes))
	for i, code := range codes {
		s, err := station.NewStation(kernel.NewUUID(), code, code, station.Production, i+1)
		require.NoError(t, err)
		stations = append(stations, s)
	}
	return station.NewPipeline(stations), stations
}

func newOrder(t *testing.T, quantities ...int) *order.Order {
	t.Helper()
	lines := make([]*order.Line, 0, len(quantities))
	for i, qty := range quantities {
		l, err := order.NewLine(kernel.NewUUID(), string(rune('A'+i)), qty, "S", "T", "")
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", "ACME", nil, lines, now)
	require.NoError(t, err)
	return o
}

func TestActivator_Activate(t *testing.T) {
	pipeline, stations := newPipeline(t, "CUT", "EDGE")

	t.Run("should cap pieces at the requested quantity", func(t *testing.T) {
		o := newOrder(t, 3)
		line := o.Lines()[0]

		result, err := services.NewActivator().Activate(o,
			[]services.ActivationRequest{{LineID: line.ID(), Qty: 5, Go: true}}, nil, pipeline, now)

		require.NoError(t, err)
		require.Len(t, result.Pieces, 3)
		assert.Equal(t, 1, result.TouchedLines)
		assert.True(t, result.StatusUpdated)
		assert.Equal(t, order.Active, o.Status())

		for i, p := range result.Pieces {
			assert.Equal(t, i+1, p.Sequence())
			assert.Equal(t, "ORD-1-A-"+string(rune('1'+i)), p.Code())
			assert.True(t, p.CurrentStation().IsEqual(stations[0].ID()))
		}
	})

	t.Run("should continue the sequence after existing pieces", func(t *testing.T) {
		o := newOrder(t, 4, 2)
		a, b := o.Lines()[0], o.Lines()[1]

		result, err := services.NewActivator().Activate(o, []services.ActivationRequest{
			{LineID: a.ID(), Qty: 2, Go: true},
			{LineID: b.ID(), Qty: 1, Go: true},
		}, map[kernel.UUID]int{a.ID(): 3, b.ID(): 2}, pipeline, now)

		require.NoError(t, err)
		require.Len(t, result.Pieces, 1)
		assert.Equal(t, "ORD-1-A-4", result.Pieces[0].Code())
		assert.Equal(t, 1, result.TouchedLines)
	})

	t.Run("should count repeated requests for one line together", func(t *testing.T) {
		o := newOrder(t, 2)
		a := o.Lines()[0]

		result, err := services.NewActivator().Activate(o, []services.ActivationRequest{
			{LineID: a.ID(), Qty: 2, Go: true},
			{LineID: a.ID(), Qty: 2, Go: true},
		}, nil, pipeline, now)

		require.NoError(t, err)
		assert.Len(t, result.Pieces, 2)
	})

	t.Run("should skip toggled-off and exhausted lines without changing status", func(t *testing.T) {
		o := newOrder(t, 1)
		a := o.Lines()[0]

		result, err := services.NewActivator().Activate(o, []services.ActivationRequest{
			{LineID: a.ID(), Qty: 1, Go: false},
		}, nil, pipeline, now)

		require.NoError(t, err)
		assert.Empty(t, result.Pieces)
		assert.False(t, result.StatusUpdated)
		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should fail as a whole for an unknown line", func(t *testing.T) {
		o := newOrder(t, 2)

		_, err := services.NewActivator().Activate(o, []services.ActivationRequest{
			{LineID: o.Lines()[0].ID(), Qty: 1, Go: true},
			{LineID: kernel.NewUUID(), Qty: 1, Go: true},
		}, nil, pipeline, now)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, order.Draft, o.Status())
	})

	t.Run("should reject activation without active stations", func(t *testing.T) {
		o := newOrder(t, 2)
		empty := station.NewPipeline(nil)

		_, err := services.NewActivator().Activate(o, []services.ActivationRequest{
			{LineID: o.Lines()[0].ID(), Qty: 1, Go: true},
		}, nil, empty, now)

		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("should reject activation of a cancelled order", func(t *testing.T) {
		o := newOrder(t, 2)
		_, err := o.Cancel(now)
		require.NoError(t, err)

		_, err = services.NewActivator().Activate(o, nil, nil, pipeline, now)

		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}
