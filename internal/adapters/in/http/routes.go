package http

import (
	"fmt"
	"net/http"

	"production/internal/core/domain/model/access"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of /api/v1.
type ServerInterface interface {
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders/{orderNumber})
	GetOrder(ctx echo.Context, orderNumber string) error
	// (POST /orders/{orderId}/activation)
	ActivateOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /stations)
	ListStations(ctx echo.Context) error
	// (POST /stations)
	AddStation(ctx echo.Context) error
	// (PUT /stations/order)
	ReorderStations(ctx echo.Context) error
	// (PATCH /stations/{stationId})
	UpdateStation(ctx echo.Context, stationId openapi_types.UUID) error
	// (GET /stations/{stationId}/queue)
	GetStationQueue(ctx echo.Context, stationId openapi_types.UUID) error
	// (GET /pieces/broken)
	ListBrokenPieces(ctx echo.Context) error
	// (POST /pieces/replacements)
	CreateReplacement(ctx echo.Context) error
	// (POST /pieces/{pieceId}/pass)
	RecordPass(ctx echo.Context, pieceId openapi_types.UUID) error
	// (POST /pieces/{pieceId}/broken)
	RecordBroken(ctx echo.Context, pieceId openapi_types.UUID) error
	// (GET /pieces/{pieceId}/events)
	GetPieceHistory(ctx echo.Context, pieceId openapi_types.UUID) error
	// (POST /deliveries)
	ConfirmDelivery(ctx echo.Context) error
}

// ServerInterfaceWrapper binds path parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderNumber string
	if err := bindPathParam(ctx, "orderNumber", &orderNumber); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderNumber)
}

func (w *ServerInterfaceWrapper) ActivateOrder(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPathParam(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.ActivateOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPathParam(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ListStations(ctx echo.Context) error {
	return w.Handler.ListStations(ctx)
}

func (w *ServerInterfaceWrapper) AddStation(ctx echo.Context) error {
	return w.Handler.AddStation(ctx)
}

func (w *ServerInterfaceWrapper) ReorderStations(ctx echo.Context) error {
	return w.Handler.ReorderStations(ctx)
}

func (w *ServerInterfaceWrapper) UpdateStation(ctx echo.Context) error {
	var stationId openapi_types.UUID
	if err := bindPathParam(ctx, "stationId", &stationId); err != nil {
		return err
	}
	return w.Handler.UpdateStation(ctx, stationId)
}

func (w *ServerInterfaceWrapper) GetStationQueue(ctx echo.Context) error {
	var stationId openapi_types.UUID
	if err := bindPathParam(ctx, "stationId", &stationId); err != nil {
		return err
	}
	return w.Handler.GetStationQueue(ctx, stationId)
}

func (w *ServerInterfaceWrapper) ListBrokenPieces(ctx echo.Context) error {
	return w.Handler.ListBrokenPieces(ctx)
}

func (w *ServerInterfaceWrapper) CreateReplacement(ctx echo.Context) error {
	return w.Handler.CreateReplacement(ctx)
}

func (w *ServerInterfaceWrapper) RecordPass(ctx echo.Context) error {
	var pieceId openapi_types.UUID
	if err := bindPathParam(ctx, "pieceId", &pieceId); err != nil {
		return err
	}
	return w.Handler.RecordPass(ctx, pieceId)
}

func (w *ServerInterfaceWrapper) RecordBroken(ctx echo.Context) error {
	var pieceId openapi_types.UUID
	if err := bindPathParam(ctx, "pieceId", &pieceId); err != nil {
		return err
	}
	return w.Handler.RecordBroken(ctx, pieceId)
}

func (w *ServerInterfaceWrapper) GetPieceHistory(ctx echo.Context) error {
	var pieceId openapi_types.UUID
	if err := bindPathParam(ctx, "pieceId", &pieceId); err != nil {
		return err
	}
	return w.Handler.GetPieceHistory(ctx, pieceId)
}

func (w *ServerInterfaceWrapper) ConfirmDelivery(ctx echo.Context) error {
	return w.Handler.ConfirmDelivery(ctx)
}

func bindPathParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// RegisterHandlers mounts the API under baseURL. Every route requires an authenticated caller
// allowed to perform the route's operation.
func RegisterHandlers(router *echo.Echo, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}

	g := router.Group(baseURL, Authenticate())

	g.POST("/orders", w.CreateOrder, Authorize(access.CreateOrder))
	g.GET("/orders/:orderNumber", w.GetOrder, Authorize(access.ViewOrder))
	g.POST("/orders/:orderId/activation", w.ActivateOrder, Authorize(access.ActivateOrder))
	g.POST("/orders/:orderId/status", w.ChangeOrderStatus, Authorize(access.ChangeOrderStatus))

	g.GET("/stations", w.ListStations, Authorize(access.ViewStations))
	g.POST("/stations", w.AddStation, Authorize(access.ManageStations))
	g.PUT("/stations/order", w.ReorderStations, Authorize(access.ManageStations))
	g.PATCH("/stations/:stationId", w.UpdateStation, Authorize(access.ManageStations))
	g.GET("/stations/:stationId/queue", w.GetStationQueue, Authorize(access.ViewQueue))

	g.GET("/pieces/broken", w.ListBrokenPieces, Authorize(access.ListBroken))
	g.POST("/pieces/replacements", w.CreateReplacement, Authorize(access.CreateReplacement))
	g.POST("/pieces/:pieceId/pass", w.RecordPass, Authorize(access.RecordPass))
	g.POST("/pieces/:pieceId/broken", w.RecordBroken, Authorize(access.RecordBroken))
	g.GET("/pieces/:pieceId/events", w.GetPieceHistory, Authorize(access.ViewPieceHistory))

	g.POST("/deliveries", w.ConfirmDelivery, Authorize(access.ConfirmDelivery))
}
