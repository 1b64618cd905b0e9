package postgres

import (
	"production/internal/adapters/out/postgres/deliveryrepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/outboxrepo"
	"production/internal/adapters/out/postgres/piecerepo"
	"production/internal/adapters/out/postgres/stationrepo"

	"gorm.io/gorm"
)

// Tables lists every table Migrate manages, children first, for truncation in tests.
var Tables = []string{
	"delivery_pieces",
	"delivery_notes",
	"piece_events",
	"pieces",
	"order_lines",
	"orders",
	"stations",
	"outbox_messages",
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&stationrepo.StationDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.LineDTO{},
		&piecerepo.PieceDTO{},
		&piecerepo.EventDTO{},
		&deliveryrepo.NoteDTO{},
		&deliveryrepo.NotePieceDTO{},
		&outboxrepo.MessageDTO{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_stations_single_active_delivery
		ON stations (kind)
		WHERE kind = 'delivery' AND active
	`).Error
}
