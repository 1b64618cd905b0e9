package commands_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/piece"
	"production/internal/core/domain/model/station"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func productionStations(t *testing.T, codes ...string) []*station.Station {
	t.Helper()
	out := make([]*station.Station, 0, len(codes))
	for i, code := range codes {
		s, err := station.NewStation(kernel.NewUUID(), code, code, station.Production, i+1)
		require.NoError(t, err)
		out = append(out, s)
	}
	return out
}

func deliveryStation(t *testing.T) *station.Station {
	t.Helper()
	s, err := station.NewStation(kernel.NewUUID(), "DOCK", "Dock", station.Delivery, 99)
	require.NoError(t, err)
	return s
}

func draftOrder(t *testing.T, quantities ...int) *order.Order {
	t.Helper()
	lines := make([]*order.Line, 0, len(quantities))
	for i, qty := range quantities {
		l, err := order.NewLine(kernel.NewUUID(), string(rune('A'+i)), qty, "S", "T", "")
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", "ACME", nil, lines, testNow)
	require.NoError(t, err)
	return o
}

func activeOrder(t *testing.T, quantities ...int) *order.Order {
	t.Helper()
	o := draftOrder(t, quantities...)
	_, err := o.Activate(testNow)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func waitingPiece(t *testing.T, o *order.Order, line *order.Line, seq int, entry *station.Station) *piece.Piece {
	t.Helper()
	p, err := piece.NewPiece(kernel.NewUUID(), o.ID(), line.ID(), piece.Code(o.Number(), line.Code(), seq), seq, entry.ID(), testNow)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func readyPiece(t *testing.T, o *order.Order, line *order.Line, seq int, last *station.Station) *piece.Piece {
	t.Helper()
	p := waitingPiece(t, o, line, seq, last)
	require.NoError(t, p.Pass(last.ID(), nil, "u0", "", testNow))
	p.ClearNewEvents()
	p.ClearDomainEvents()
	return p
}

func brokenPiece(t *testing.T, o *order.Order, line *order.Line, code string, at *station.Station) *piece.Piece {
	t.Helper()
	p, err := piece.NewPiece(kernel.NewUUID(), o.ID(), line.ID(), code, 1, at.ID(), testNow)
	require.NoError(t, err)
	require.NoError(t, p.MarkBroken(at.ID(), "u0", "cracked", testNow))
	p.ClearNewEvents()
	p.ClearDomainEvents()
	return p
}
