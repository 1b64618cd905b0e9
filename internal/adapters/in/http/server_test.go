package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"production/api"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/piece"
	"production/internal/metrics"
	"production/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f HandlerFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) {
	return f(ctx, in)
}

type recordBrokenFunc func(ctx context.Context, command commands.RecordBrokenCommand) error

func (f recordBrokenFunc) Handle(ctx context.Context, command commands.RecordBrokenCommand) error {
	return f(ctx, command)
}

func newTestRouter(t *testing.T, handlers Handlers) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	doc, err := api.Load(context.Background())
	require.NoError(t, err)

	return NewRouter(NewServer(handlers, logger), RouterConfig{
		Metrics:  metrics.NewProductionMetricsWithRegisterer(registry),
		Gatherer: registry,
		OpenAPI:  doc,
		Logger:   logger,
	})
}

type caller struct {
	user    string
	role    string
	station string
}

func do(router http.Handler, method, target, body string, who caller) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if who.user != "" {
		req.Header.Set(HeaderUserID, who.user)
	}
	if who.role != "" {
		req.Header.Set(HeaderUserRole, who.role)
	}
	if who.station != "" {
		req.Header.Set(HeaderStationID, who.station)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var manager = caller{user: "u-1", role: "manager"}

func TestRouter_Authentication(t *testing.T) {
	router := newTestRouter(t, Handlers{})

	t.Run("missing user", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/stations", "", caller{role: "manager"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/stations", "", caller{user: "u-1", role: "janitor"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed station header", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/api/v1/stations", "", caller{user: "u-1", role: "station", station: "cut"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("role without capability", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/orders", `{}`, caller{user: "u-1", role: "station"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, http.StatusForbidden, decodeError(t, rec).Code)
	})
}

func TestServer_CreateOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	var received commands.CreateOrderCommand
	calls := 0

	router := newTestRouter(t, Handlers{
		CreateOrder: HandlerFunc[commands.CreateOrderCommand, kernel.UUID](
			func(_ context.Context, cmd commands.CreateOrderCommand) (kernel.UUID, error) {
				calls++
				received = cmd
				return orderID, nil
			}),
	})

	t.Run("created", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/orders", `{
			"number": "ORD-2041",
			"customer": "ACME Glass",
			"delivery_date": "2026-11-02",
			"lines": [{"code": "A1", "qty": 4, "size": "1200x800", "type": "tempered"}]
		}`, manager)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var body Created
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, orderID.String(), body.Id.String())

		assert.Equal(t, "ORD-2041", received.Number())
		require.NotNil(t, received.DeliveryDate())
		assert.Equal(t, time.November, received.DeliveryDate().Month())
		require.Len(t, received.Lines(), 1)
		assert.Equal(t, 4, received.Lines()[0].Qty)
	})

	t.Run("invalid input never reaches the handler", func(t *testing.T) {
		before := calls
		rec := do(router, http.MethodPost, "/api/v1/orders", `{"number": "ORD-2042", "customer": "ACME", "lines": []}`, manager)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "lines")
		assert.Equal(t, before, calls)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/orders", `{"number":`, manager)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", errs.NewObjectNotFoundError("order", "ORD-1"), http.StatusNotFound, "ORD-1"},
		{"conflict", errs.NewConflictError("piece ORD-1-A1-1", "is not ready"), http.StatusConflict, "is not ready"},
		{"precondition", errs.NewPreconditionFailedError("no active station is configured"), http.StatusUnprocessableEntity, "no active station"},
		{"infrastructure", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, Handlers{
				GetOrder: HandlerFunc[queries.GetOrderQuery, queries.OrderView](
					func(context.Context, queries.GetOrderQuery) (queries.OrderView, error) {
						return queries.OrderView{}, tt.err
					}),
			})

			rec := do(router, http.MethodGet, "/api/v1/orders/ORD-1", "", manager)

			assert.Equal(t, tt.code, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Contains(t, body.Message, tt.message)
			assert.NotContains(t, body.Message, "pq:")
		})
	}
}

func TestServer_GetOrder(t *testing.T) {
	due := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	router := newTestRouter(t, Handlers{
		GetOrder: HandlerFunc[queries.GetOrderQuery, queries.OrderView](
			func(_ context.Context, q queries.GetOrderQuery) (queries.OrderView, error) {
				return queries.OrderView{
					ID:           kernel.NewUUID(),
					Number:       q.Number(),
					Customer:     "ACME Glass",
					DeliveryDate: &due,
					Status:       "Active",
					Lines:        []queries.LineView{{ID: kernel.NewUUID(), Code: "A1", Quantity: 4, Activated: 4, Ready: 2}},
					Summary:      delivery.NewSummary(4, 2, 1),
				}, nil
			}),
	})

	rec := do(router, http.MethodGet, "/api/v1/orders/ORD%202041", "", caller{user: "d-1", role: "delivery"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ORD 2041", body.Number)
	require.NotNil(t, body.DeliveryDate)
	assert.Equal(t, "2026-11-02", body.DeliveryDate.String())
	assert.Equal(t, Summary{Total: 4, Ready: 2, Delivered: 1, Remaining: 3}, body.Summary)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, 4, body.Lines[0].Activated)
	assert.Empty(t, body.Deliveries)
}

func TestServer_RecordPass(t *testing.T) {
	pieceID := kernel.NewUUID()
	cut, edge := kernel.NewUUID(), kernel.NewUUID()
	var received commands.RecordPassCommand

	router := newTestRouter(t, Handlers{
		RecordPass: HandlerFunc[commands.RecordPassCommand, commands.RecordPassResult](
			func(_ context.Context, cmd commands.RecordPassCommand) (commands.RecordPassResult, error) {
				received = cmd
				return commands.RecordPassResult{Status: piece.InProgress, NextStation: &edge}, nil
			}),
	})
	target := "/api/v1/pieces/" + pieceID.String() + "/pass"

	t.Run("station defaults to the caller's", func(t *testing.T) {
		rec := do(router, http.MethodPost, target, `{"notes": "ok"}`, caller{user: "w-7", role: "station", station: cut.String()})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, received.PieceID().IsEqual(pieceID))
		assert.True(t, received.StationID().IsEqual(cut))
		assert.Equal(t, "w-7", received.UserID())

		var body PassResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "in_progress", body.Status)
		require.NotNil(t, body.NextStationId)
		assert.Equal(t, edge.String(), body.NextStationId.String())
	})

	t.Run("station worker cannot scan elsewhere", func(t *testing.T) {
		rec := do(router, http.MethodPost, target, `{"station_id": "`+edge.String()+`"}`,
			caller{user: "w-7", role: "station", station: cut.String()})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager must name the station", func(t *testing.T) {
		rec := do(router, http.MethodPost, target, `{}`, manager)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed piece id", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/pieces/not-a-uuid/pass", `{}`, manager)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "pieceId")
	})
}

func TestServer_RecordBroken(t *testing.T) {
	stationID := kernel.NewUUID()
	var reason string
	router := newTestRouter(t, Handlers{
		RecordBroken: recordBrokenFunc(func(_ context.Context, cmd commands.RecordBrokenCommand) error {
			reason = cmd.Reason()
			return nil
		}),
	})

	rec := do(router, http.MethodPost, "/api/v1/pieces/"+kernel.NewUUID().String()+"/broken",
		`{"station_id": "`+stationID.String()+`", "reason": "chipped edge"}`, manager)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "chipped edge", reason)
}

func TestServer_GetStationQueue_ScopedToOwnStation(t *testing.T) {
	own := kernel.NewUUID()
	router := newTestRouter(t, Handlers{
		StationQueue: HandlerFunc[queries.StationQueueQuery, []queries.QueueItem](
			func(context.Context, queries.StationQueueQuery) ([]queries.QueueItem, error) {
				return []queries.QueueItem{{PieceID: kernel.NewUUID(), Code: "ORD-1-A1-1", Status: "waiting"}}, nil
			}),
	})
	worker := caller{user: "w-1", role: "station", station: own.String()}

	rec := do(router, http.MethodGet, "/api/v1/stations/"+own.String()+"/queue", "", worker)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []QueueItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "ORD-1-A1-1", items[0].Code)

	rec = do(router, http.MethodGet, "/api/v1/stations/"+kernel.NewUUID().String()+"/queue", "", worker)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_ConfirmDelivery(t *testing.T) {
	orderID := kernel.NewUUID()
	var received commands.ConfirmDeliveryCommand

	router := newTestRouter(t, Handlers{
		ConfirmDelivery: HandlerFunc[commands.ConfirmDeliveryCommand, commands.ConfirmDeliveryResult](
			func(_ context.Context, cmd commands.ConfirmDeliveryCommand) (commands.ConfirmDeliveryResult, error) {
				received = cmd
				return commands.ConfirmDeliveryResult{
					OrderID:        orderID,
					NoteNumber:     "DN-0002",
					DeliveredCount: 2,
					Summary:        delivery.NewSummary(4, 0, 4),
					OrderCompleted: true,
					History: []delivery.NoteRecord{
						{ID: kernel.NewUUID(), Number: "DN-0001", PieceCodes: []string{"ORD-1-A1-1", "ORD-1-A1-2"}},
						{ID: kernel.NewUUID(), Number: "DN-0002", PieceCodes: []string{"ORD-1-A1-3", "ORD-1-A1-4"}},
					},
				}, nil
			}),
	})
	driver := caller{user: "d-1", role: "delivery"}

	t.Run("grouped", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/deliveries", `{
			"order_number": "ORD-1",
			"mode": "grouped",
			"driver": "Ivan",
			"groups": [{"line_code": "A1", "size": "1200x800", "type": "tempered", "qty": 2}]
		}`, driver)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, delivery.Grouped, received.Mode())
		assert.Equal(t, "d-1", received.Input().UserID)
		require.Len(t, received.Selectors(), 1)
		assert.Equal(t, 2, received.Selectors()[0].Qty)

		var body DeliveryResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.DeliveredCount)
		assert.Equal(t, "DN-0002", body.NoteNumber)
		assert.True(t, body.OrderCompleted)
		assert.Equal(t, 0, body.Summary.Remaining)
		require.Len(t, body.History, 2)
		assert.Equal(t, []string{"ORD-1-A1-3", "ORD-1-A1-4"}, body.History[1].PieceCodes)
	})

	t.Run("pieces", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/deliveries",
			`{"order_number": "ORD-1", "mode": "pieces", "piece_codes": ["ORD-1-A1-3", "ORD-1-A1-4"]}`, driver)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, delivery.Pieces, received.Mode())
		assert.Len(t, received.Codes(), 2)
	})

	t.Run("unknown mode", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/deliveries", `{"order_number": "ORD-1", "mode": "truck"}`, driver)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("station worker cannot deliver", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/api/v1/deliveries", `{}`, caller{user: "w-1", role: "station"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRouter_ServiceEndpoints(t *testing.T) {
	router := newTestRouter(t, Handlers{})

	rec := do(router, http.MethodGet, "/health", "", caller{})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Populates the latency histogram through the instrument middleware.
	do(router, http.MethodGet, "/api/v1/stations", "", caller{})

	rec = do(router, http.MethodGet, "/metrics", "", caller{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "production_http_request_duration_seconds")

	rec = do(router, http.MethodGet, "/openapi.json", "", caller{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/deliveries")
}
