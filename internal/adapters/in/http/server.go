package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/delivery"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/station"
	"production/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handler is the shape shared by command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type RecordBrokenHandler interface {
	Handle(ctx context.Context, command commands.RecordBrokenCommand) error
}

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	CreateOrder       Handler[commands.CreateOrderCommand, kernel.UUID]
	ActivateOrder     Handler[commands.ActivateOrderCommand, commands.ActivateOrderResult]
	ChangeOrderStatus Handler[commands.ChangeOrderStatusCommand, order.Status]
	AddStation        Handler[commands.AddStationCommand, *station.Station]
	UpdateStation     Handler[commands.UpdateStationCommand, *station.Station]
	ReorderStations   Handler[commands.ReorderStationsCommand, []*station.Station]
	RecordPass        Handler[commands.RecordPassCommand, commands.RecordPassResult]
	RecordBroken      RecordBrokenHandler
	CreateReplacement Handler[commands.CreateReplacementCommand, commands.CreateReplacementResult]
	ConfirmDelivery   Handler[commands.ConfirmDeliveryCommand, commands.ConfirmDeliveryResult]

	GetOrder     Handler[queries.GetOrderQuery, queries.OrderView]
	ListStations Handler[queries.ListStationsQuery, []queries.StationView]
	StationQueue Handler[queries.StationQueueQuery, []queries.QueueItem]
	ListBroken   Handler[queries.ListBrokenPiecesQuery, []queries.BrokenPieceView]
	PieceHistory Handler[queries.PieceHistoryQuery, queries.PieceHistory]
}

var (
	errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	errForbidden   = echo.NewHTTPError(http.StatusForbidden, "Operation is not allowed for this caller")
)

// Server implements ServerInterface. Handlers return domain errors unchanged; HTTPErrorHandler
// turns them into responses.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	lines := make([]commands.OrderLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		lines = append(lines, commands.OrderLineInput{Code: l.Code, Qty: l.Qty, Size: l.Size, Type: l.Type, Notes: l.Notes})
	}

	var due *time.Time
	if body.DeliveryDate != nil {
		due = &body.DeliveryDate.Time
	}

	cmd, err := commands.NewCreateOrderCommand(body.Number, body.Customer, due, lines)
	if err != nil {
		return err
	}

	id, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{Id: id.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderNumber}.
func (s *Server) GetOrder(ctx echo.Context, orderNumber string) error {
	query, err := queries.NewGetOrderQuery(orderNumber)
	if err != nil {
		return err
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := Order{
		Id:         view.ID.Bytes(),
		Number:     view.Number,
		Customer:   view.Customer,
		Status:     view.Status,
		CreatedAt:  view.CreatedAt,
		Lines:      make([]OrderLine, 0, len(view.Lines)),
		Summary:    toSummary(view.Summary),
		Deliveries: toDeliveryNotes(view.Deliveries),
	}
	if view.DeliveryDate != nil {
		response.DeliveryDate = &openapi_types.Date{Time: *view.DeliveryDate}
	}
	for _, l := range view.Lines {
		response.Lines = append(response.Lines, OrderLine{
			Id:        l.ID.Bytes(),
			Code:      l.Code,
			Qty:       l.Quantity,
			Size:      l.Size,
			Type:      l.Type,
			Notes:     l.Notes,
			Activated: l.Activated,
			Ready:     l.Ready,
			Delivered: l.Delivered,
			Broken:    l.Broken,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ActivateOrder handles POST /api/v1/orders/{orderId}/activation.
func (s *Server) ActivateOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body ActivationRequest
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	orderID, err := toKernelID(orderId)
	if err != nil {
		return err
	}

	lines := make([]commands.ActivationLine, 0, len(body.Lines))
	for _, l := range body.Lines {
		lineID, err := toKernelID(l.LineId)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("line_id", err)
		}
		lines = append(lines, commands.ActivationLine{LineID: lineID, Qty: l.Qty, Go: l.Go})
	}

	cmd, err := commands.NewActivateOrderCommand(orderID, lines)
	if err != nil {
		return err
	}

	result, err := s.h.ActivateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ActivationResult{
		CreatedPieces: result.CreatedPieces,
		TouchedLines:  result.TouchedLines,
		StatusUpdated: result.StatusUpdated,
	})
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body StatusChange
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	orderID, err := toKernelID(orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, body.Action)
	if err != nil {
		return err
	}

	status, err := s.h.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, OrderStatus{Status: status.String()})
}

// ListStations handles GET /api/v1/stations.
func (s *Server) ListStations(ctx echo.Context) error {
	views, err := s.h.ListStations.Handle(ctx.Request().Context(), queries.NewListStationsQuery())
	if err != nil {
		return err
	}

	response := make([]Station, 0, len(views))
	for _, v := range views {
		queued := v.Queued
		response = append(response, Station{
			Id:         v.ID.Bytes(),
			Code:       v.Code,
			Name:       v.Name,
			Kind:       v.Kind,
			StageOrder: v.StageOrder,
			Active:     v.Active,
			Queued:     &queued,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddStation handles POST /api/v1/stations.
func (s *Server) AddStation(ctx echo.Context) error {
	var body NewStation
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	cmd, err := commands.NewAddStationCommand(body.Code, body.Name, body.Kind, body.StageOrder)
	if err != nil {
		return err
	}

	st, err := s.h.AddStation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toStation(st))
}

// UpdateStation handles PATCH /api/v1/stations/{stationId}.
func (s *Server) UpdateStation(ctx echo.Context, stationId openapi_types.UUID) error {
	var body StationPatch
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	stationID, err := toKernelID(stationId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateStationCommand(stationID, body.Name, body.Active)
	if err != nil {
		return err
	}

	st, err := s.h.UpdateStation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toStation(st))
}

// ReorderStations handles PUT /api/v1/stations/order.
func (s *Server) ReorderStations(ctx echo.Context) error {
	var body StationOrder
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	ids := make([]kernel.UUID, 0, len(body.StationIds))
	for _, raw := range body.StationIds {
		id, err := toKernelID(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("station_ids", err)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewReorderStationsCommand(ids)
	if err != nil {
		return err
	}

	stations, err := s.h.ReorderStations.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	response := make([]Station, 0, len(stations))
	for _, st := range stations {
		response = append(response, toStation(st))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetStationQueue handles GET /api/v1/stations/{stationId}/queue.
func (s *Server) GetStationQueue(ctx echo.Context, stationId openapi_types.UUID) error {
	stationID, err := toKernelID(stationId)
	if err != nil {
		return err
	}
	if !identityFrom(ctx).CanActAt(stationID) {
		return errForbidden
	}

	query, err := queries.NewStationQueueQuery(stationID)
	if err != nil {
		return err
	}

	items, err := s.h.StationQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]QueueItem, 0, len(items))
	for _, it := range items {
		response = append(response, QueueItem{
			PieceId:     it.PieceID.Bytes(),
			Code:        it.Code,
			Status:      it.Status,
			OrderNumber: it.OrderNumber,
			LineCode:    it.LineCode,
			Size:        it.Size,
			Type:        it.Type,
			Replacement: it.Replacement,
			CreatedAt:   it.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListBrokenPieces handles GET /api/v1/pieces/broken.
func (s *Server) ListBrokenPieces(ctx echo.Context) error {
	views, err := s.h.ListBroken.Handle(ctx.Request().Context(), queries.NewListBrokenPiecesQuery())
	if err != nil {
		return err
	}

	response := make([]BrokenPiece, 0, len(views))
	for _, v := range views {
		response = append(response, BrokenPiece{
			PieceId:     v.PieceID.Bytes(),
			Code:        v.Code,
			OrderId:     v.OrderID.Bytes(),
			OrderNumber: v.OrderNumber,
			Customer:    v.Customer,
			LineCode:    v.LineCode,
			Size:        v.Size,
			Type:        v.Type,
			StationCode: v.StationCode,
			Reason:      v.Reason,
			BrokenBy:    v.BrokenBy,
			BrokenAt:    v.BrokenAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateReplacement handles POST /api/v1/pieces/replacements.
func (s *Server) CreateReplacement(ctx echo.Context) error {
	var body ReplacementRequest
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	cmd, err := commands.NewCreateReplacementCommand(body.PieceCode)
	if err != nil {
		return err
	}

	result, err := s.h.CreateReplacement.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Replacement{
		PieceId:        result.PieceID.Bytes(),
		Code:           result.Code,
		EntryStationId: result.EntryStation.Bytes(),
	})
}

// RecordPass handles POST /api/v1/pieces/{pieceId}/pass.
func (s *Server) RecordPass(ctx echo.Context, pieceId openapi_types.UUID) error {
	var body PassRequest
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	pieceID, stationID, err := s.pieceAtStation(ctx, pieceId, body.StationId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordPassCommand(pieceID, stationID, identityFrom(ctx).UserID, body.Notes)
	if err != nil {
		return err
	}

	result, err := s.h.RecordPass.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, PassResult{
		Status:        result.Status.String(),
		NextStationId: toAPIIDPtr(result.NextStation),
	})
}

// RecordBroken handles POST /api/v1/pieces/{pieceId}/broken.
func (s *Server) RecordBroken(ctx echo.Context, pieceId openapi_types.UUID) error {
	var body BrokenRequest
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	pieceID, stationID, err := s.pieceAtStation(ctx, pieceId, body.StationId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordBrokenCommand(pieceID, stationID, identityFrom(ctx).UserID, body.Reason)
	if err != nil {
		return err
	}

	if err = s.h.RecordBroken.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPieceHistory handles GET /api/v1/pieces/{pieceId}/events.
func (s *Server) GetPieceHistory(ctx echo.Context, pieceId openapi_types.UUID) error {
	pieceID, err := toKernelID(pieceId)
	if err != nil {
		return err
	}

	query, err := queries.NewPieceHistoryQuery(pieceID)
	if err != nil {
		return err
	}

	history, err := s.h.PieceHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := PieceHistory{
		PieceId:          history.PieceID.Bytes(),
		Code:             history.Code,
		Status:           history.Status,
		CurrentStationId: toAPIIDPtr(history.CurrentStation),
		Folded: PieceState{
			Status:           history.Folded.Status,
			CurrentStationId: toAPIIDPtr(history.Folded.CurrentStation),
		},
		Consistent: history.Consistent,
		Events:     make([]PieceEvent, 0, len(history.Events)),
	}
	for _, e := range history.Events {
		response.Events = append(response.Events, PieceEvent{
			Id:              e.ID.Bytes(),
			Type:            e.Type,
			StationId:       toAPIIDPtr(e.StationID),
			StationCode:     e.StationCode,
			NextStationId:   toAPIIDPtr(e.NextStationID),
			NextStationCode: e.NextStationCode,
			UserId:          e.UserID,
			Notes:           e.Notes,
			At:              e.At,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmDelivery handles POST /api/v1/deliveries. The response carries the order's updated
// summary and its full delivery note history.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	var body DeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return errInvalidBody
	}

	mode, err := delivery.ParseMode(body.Mode)
	if err != nil {
		return err
	}

	input := commands.DeliveryInput{
		OrderNumber: body.OrderNumber,
		NoteNumber:  body.NoteNumber,
		Driver:      body.Driver,
		Notes:       body.Notes,
		UserID:      identityFrom(ctx).UserID,
	}

	var cmd commands.ConfirmDeliveryCommand
	switch mode {
	case delivery.Grouped:
		selectors := make([]delivery.Selector, 0, len(body.Groups))
		var selectorErr error
		for _, g := range body.Groups {
			sel, err := delivery.NewSelector(g.LineCode, g.Size, g.Type, g.Qty)
			if err != nil {
				selectorErr = errors.Join(selectorErr, err)
				continue
			}
			selectors = append(selectors, sel)
		}
		if selectorErr != nil {
			return selectorErr
		}
		cmd, err = commands.NewGroupedDeliveryCommand(input, selectors)
	case delivery.Pieces:
		cmd, err = commands.NewPiecesDeliveryCommand(input, body.PieceCodes)
	}
	if err != nil {
		return err
	}

	result, err := s.h.ConfirmDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, DeliveryResult{
		DeliveredCount: result.DeliveredCount,
		NoteNumber:     result.NoteNumber,
		Summary:        toSummary(result.Summary),
		OrderCompleted: result.OrderCompleted,
		History:        toDeliveryNotes(result.History),
	})
}

// pieceAtStation resolves the station a scan happens at: the body's station, else the
// caller's own. Station workers may only scan at their own station.
func (s *Server) pieceAtStation(
	ctx echo.Context,
	pieceId openapi_types.UUID,
	stationId *openapi_types.UUID,
) (kernel.UUID, kernel.UUID, error) {
	pieceID, err := toKernelID(pieceId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	caller := identityFrom(ctx)

	var stationID kernel.UUID
	switch {
	case stationId != nil:
		if stationID, err = toKernelID(*stationId); err != nil {
			return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("station_id", err)
		}
	case caller.Station != nil:
		stationID = *caller.Station
	default:
		return kernel.UUID{}, kernel.UUID{}, errs.NewValueIsRequiredError("station_id")
	}

	if !caller.CanActAt(stationID) {
		return kernel.UUID{}, kernel.UUID{}, errForbidden
	}
	return pieceID, stationID, nil
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toAPIIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func toStation(st *station.Station) Station {
	return Station{
		Id:         st.ID().Bytes(),
		Code:       st.Code(),
		Name:       st.Name(),
		Kind:       st.Kind().String(),
		StageOrder: st.StageOrder(),
		Active:     st.IsActive(),
	}
}

func toSummary(s delivery.Summary) Summary {
	return Summary{Total: s.Total, Ready: s.Ready, Delivered: s.Delivered, Remaining: s.Remaining}
}

func toDeliveryNotes(views []queries.DeliveryNoteView) []DeliveryNote {
	notes := make([]DeliveryNote, 0, len(views))
	for _, v := range views {
		codes := v.PieceCodes
		if codes == nil {
			codes = []string{}
		}
		notes = append(notes, DeliveryNote{
			Id:         v.ID.Bytes(),
			Number:     v.Number,
			Driver:     v.Driver,
			Notes:      v.Notes,
			CreatedBy:  v.CreatedBy,
			CreatedAt:  v.CreatedAt,
			PieceCodes: codes,
		})
	}
	return notes
}
