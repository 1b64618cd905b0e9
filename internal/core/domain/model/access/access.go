// Package access holds the single capability predicate consulted before every operation.
package access

import (
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

type Role string

const (
	Admin      Role = "admin"
	Manager    Role = "manager"
	Activation Role = "activation"
	Station    Role = "station"
	Delivery   Role = "delivery"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case Admin, Manager, Activation, Station, Delivery:
		return r, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", s))
}

type Operation string

const (
	CreateOrder       Operation = "order:create"
	ViewOrder         Operation = "order:view"
	ActivateOrder     Operation = "order:activate"
	ChangeOrderStatus Operation = "order:status"
	ViewStations      Operation = "station:view"
	ManageStations    Operation = "station:manage"
	ViewQueue         Operation = "station:queue"
	RecordPass        Operation = "piece:pass"
	RecordBroken      Operation = "piece:broken"
	ListBroken        Operation = "piece:list_broken"
	CreateReplacement Operation = "piece:replace"
	ViewPieceHistory  Operation = "piece:history"
	ConfirmDelivery   Operation = "delivery:confirm"
)

var capabilities = map[Role][]Operation{
	Manager: {
		CreateOrder, ViewOrder, ActivateOrder, ChangeOrderStatus, ViewStations, ViewQueue,
		RecordPass, RecordBroken, ListBroken, CreateReplacement, ViewPieceHistory, ConfirmDelivery,
	},
	Activation: {
		CreateOrder, ViewOrder, ActivateOrder, ChangeOrderStatus, ViewStations, ViewQueue,
		ListBroken, CreateReplacement, ViewPieceHistory,
	},
	Station: {
		ViewStations, ViewQueue, RecordPass, RecordBroken, ViewPieceHistory,
	},
	Delivery: {
		ViewOrder, ViewStations, ViewPieceHistory, ConfirmDelivery,
	},
}

// CanPerform reports whether role may invoke op. Admins may do everything.
func CanPerform(role Role, op Operation) bool {
	if role == Admin {
		return true
	}
	for _, allowed := range capabilities[role] {
		if allowed == op {
			return true
		}
	}
	return false
}

// Identity is the caller as resolved by the authentication layer.
type Identity struct {
	UserID  string
	Role    Role
	Station *kernel.UUID
}

// CanActAt reports whether the caller may read or act on the queue of station. Station
// workers are bound to their own station; other roles are not.
func (i Identity) CanActAt(station kernel.UUID) bool {
	if i.Role != Station {
		return true
	}
	return i.Station != nil && i.Station.IsEqual(station)
}
