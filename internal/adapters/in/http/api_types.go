package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies of /api/v1, as documented in api/openapi.yml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrderLine struct {
	Code  string `json:"code"`
	Qty   int    `json:"qty"`
	Size  string `json:"size,omitempty"`
	Type  string `json:"type,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type NewOrder struct {
	Number       string              `json:"number"`
	Customer     string              `json:"customer"`
	DeliveryDate *openapi_types.Date `json:"delivery_date,omitempty"`
	Lines        []NewOrderLine      `json:"lines"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type OrderLine struct {
	Id        openapi_types.UUID `json:"id"`
	Code      string             `json:"code"`
	Qty       int                `json:"qty"`
	Size      string             `json:"size"`
	Type      string             `json:"type"`
	Notes     string             `json:"notes"`
	Activated int                `json:"activated"`
	Ready     int                `json:"ready"`
	Delivered int                `json:"delivered"`
	Broken    int                `json:"broken"`
}

type Summary struct {
	Total     int `json:"total"`
	Ready     int `json:"ready"`
	Delivered int `json:"delivered"`
	Remaining int `json:"remaining"`
}

type DeliveryNote struct {
	Id         openapi_types.UUID `json:"id"`
	Number     string             `json:"number"`
	Driver     string             `json:"driver"`
	Notes      string             `json:"notes"`
	CreatedBy  string             `json:"created_by"`
	CreatedAt  time.Time          `json:"created_at"`
	PieceCodes []string           `json:"piece_codes"`
}

type Order struct {
	Id           openapi_types.UUID  `json:"id"`
	Number       string              `json:"number"`
	Customer     string              `json:"customer"`
	DeliveryDate *openapi_types.Date `json:"delivery_date,omitempty"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	Lines        []OrderLine         `json:"lines"`
	Summary      Summary             `json:"summary"`
	Deliveries   []DeliveryNote      `json:"deliveries"`
}

type ActivationLine struct {
	LineId openapi_types.UUID `json:"line_id"`
	Qty    int                `json:"qty"`
	Go     bool               `json:"go"`
}

type ActivationRequest struct {
	Lines []ActivationLine `json:"lines"`
}

type ActivationResult struct {
	CreatedPieces int  `json:"created_pieces"`
	TouchedLines  int  `json:"touched_lines"`
	StatusUpdated bool `json:"status_updated"`
}

type StatusChange struct {
	Action string `json:"action"`
}

type OrderStatus struct {
	Status string `json:"status"`
}

type NewStation struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Kind       string `json:"kind,omitempty"`
	StageOrder *int   `json:"stage_order,omitempty"`
}

type StationPatch struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type StationOrder struct {
	StationIds []openapi_types.UUID `json:"station_ids"`
}

type Station struct {
	Id         openapi_types.UUID `json:"id"`
	Code       string             `json:"code"`
	Name       string             `json:"name"`
	Kind       string             `json:"kind"`
	StageOrder int                `json:"stage_order"`
	Active     bool               `json:"active"`
	Queued     *int               `json:"queued,omitempty"`
}

type QueueItem struct {
	PieceId     openapi_types.UUID `json:"piece_id"`
	Code        string             `json:"code"`
	Status      string             `json:"status"`
	OrderNumber string             `json:"order_number"`
	LineCode    string             `json:"line_code"`
	Size        string             `json:"size"`
	Type        string             `json:"type"`
	Replacement bool               `json:"replacement"`
	CreatedAt   time.Time          `json:"created_at"`
}

type BrokenPiece struct {
	PieceId     openapi_types.UUID `json:"piece_id"`
	Code        string             `json:"code"`
	OrderId     openapi_types.UUID `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Customer    string             `json:"customer"`
	LineCode    string             `json:"line_code"`
	Size        string             `json:"size"`
	Type        string             `json:"type"`
	StationCode string             `json:"station_code"`
	Reason      string             `json:"reason"`
	BrokenBy    string             `json:"broken_by"`
	BrokenAt    time.Time          `json:"broken_at"`
}

type ReplacementRequest struct {
	PieceCode string `json:"piece_code"`
}

type Replacement struct {
	PieceId        openapi_types.UUID `json:"piece_id"`
	Code           string             `json:"code"`
	EntryStationId openapi_types.UUID `json:"entry_station_id"`
}

// PassRequest and BrokenRequest fall back to the caller's X-Station-ID when StationId is unset.
type PassRequest struct {
	StationId *openapi_types.UUID `json:"station_id,omitempty"`
	Notes     string              `json:"notes,omitempty"`
}

type PassResult struct {
	Status        string              `json:"status"`
	NextStationId *openapi_types.UUID `json:"next_station_id"`
}

type BrokenRequest struct {
	StationId *openapi_types.UUID `json:"station_id,omitempty"`
	Reason    string              `json:"reason"`
}

type PieceEvent struct {
	Id              openapi_types.UUID  `json:"id"`
	Type            string              `json:"type"`
	StationId       *openapi_types.UUID `json:"station_id"`
	StationCode     string              `json:"station_code"`
	NextStationId   *openapi_types.UUID `json:"next_station_id"`
	NextStationCode string              `json:"next_station_code"`
	UserId          string              `json:"user_id"`
	Notes           string              `json:"notes"`
	At              time.Time           `json:"at"`
}

type PieceState struct {
	Status           string              `json:"status"`
	CurrentStationId *openapi_types.UUID `json:"current_station_id"`
}

type PieceHistory struct {
	PieceId          openapi_types.UUID  `json:"piece_id"`
	Code             string              `json:"code"`
	Status           string              `json:"status"`
	CurrentStationId *openapi_types.UUID `json:"current_station_id"`
	Folded           PieceState          `json:"folded"`
	Consistent       bool                `json:"consistent"`
	Events           []PieceEvent        `json:"events"`
}

type DeliveryGroup struct {
	LineCode string `json:"line_code"`
	Size     string `json:"size"`
	Type     string `json:"type"`
	Qty      int    `json:"qty"`
}

type DeliveryRequest struct {
	OrderNumber string          `json:"order_number"`
	Mode        string          `json:"mode"`
	NoteNumber  string          `json:"note_number,omitempty"`
	Driver      string          `json:"driver,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Groups      []DeliveryGroup `json:"groups,omitempty"`
	PieceCodes  []string        `json:"piece_codes,omitempty"`
}

type DeliveryResult struct {
	DeliveredCount int            `json:"delivered_count"`
	NoteNumber     string         `json:"note_number"`
	Summary        Summary        `json:"summary"`
	OrderCompleted bool           `json:"order_completed"`
	History        []DeliveryNote `json:"history"`
}
