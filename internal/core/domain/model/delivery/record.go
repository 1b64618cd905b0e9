package delivery

import (
	"time"

	"production/internal/core/domain/model/kernel"
)

// NoteRecord is a stored delivery note with the codes of the pieces it handed over.
type NoteRecord struct {
	ID         kernel.UUID
	Number     string
	Driver     string
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
	PieceCodes []string
}
