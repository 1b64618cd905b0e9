package station_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/station"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Add(t *testing.T) {
	r := station.NewRegistry([]*station.Station{
		mustStation(t, "CUT", station.Production, 1),
		mustStation(t, "DOCK", station.Delivery, 2),
	})

	t.Run("should reject a duplicate code", func(t *testing.T) {
		err := r.Add(mustStation(t, "cut", station.Production, 5))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject a taken stage order", func(t *testing.T) {
		err := r.Add(mustStation(t, "EDGE", station.Production, 1))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject a second delivery station", func(t *testing.T) {
		err := r.Add(mustStation(t, "DOCK2", station.Delivery, 7))
		assert.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should add at the next stage order", func(t *testing.T) {
		require.Equal(t, 3, r.NextStageOrder())
		require.NoError(t, r.Add(mustStation(t, "EDGE", station.Production, r.NextStageOrder())))
		assert.Equal(t, 2, r.Pipeline().Len())
		assert.Equal(t, "DOCK", r.DeliveryStation().Code())
	})
}

func TestRegistry_ActivateDeactivate(t *testing.T) {
	cut := mustStation(t, "CUT", station.Production, 1)
	r := station.NewRegistry([]*station.Station{cut})

	_, err := r.Deactivate(cut.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, r.Pipeline().Len())

	require.NoError(t, r.Add(mustStation(t, "SAW", station.Production, 1)))

	_, err = r.Activate(cut.ID())
	assert.ErrorIs(t, err, errs.ErrConflict, "stage order 1 is taken by SAW")

	_, err = r.Activate(kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRegistry_Reorder(t *testing.T) {
	cut := mustStation(t, "CUT", station.Production, 1)
	edge := mustStation(t, "EDGE", station.Production, 2)
	temper := mustStation(t, "TEMPER", station.Production, 3)
	dock := mustStation(t, "DOCK", station.Delivery, 4)
	r := station.NewRegistry([]*station.Station{cut, edge, temper, dock})

	t.Run("should renumber every production station", func(t *testing.T) {
		changed, err := r.Reorder([]kernel.UUID{temper.ID(), cut.ID(), edge.ID()})
		require.NoError(t, err)
		assert.Len(t, changed, 3)

		assert.Equal(t, 1, temper.StageOrder())
		assert.Equal(t, 2, cut.StageOrder())
		assert.Equal(t, 3, edge.StageOrder())
		assert.Equal(t, 4, dock.StageOrder())
	})

	t.Run("should require the whole set", func(t *testing.T) {
		_, err := r.Reorder([]kernel.UUID{cut.ID(), edge.ID()})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = r.Reorder([]kernel.UUID{cut.ID(), edge.ID(), dock.ID()})
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = r.Reorder([]kernel.UUID{cut.ID(), cut.ID(), edge.ID()})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
