// Package stationrepo persists the station registry.
package stationrepo

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/station"

	"github.com/google/uuid"
)

// StationDTO is one row of the stations table. At most one delivery station may be
// active; the partial unique index for that rule is created by postgres.Migrate.
type StationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code       string    `gorm:"size:64;not null;uniqueIndex"`
	Name       string    `gorm:"size:255;not null"`
	Kind       string    `gorm:"size:16;not null;index"`
	StageOrder int       `gorm:"not null"`
	Active     bool      `gorm:"not null;default:true;index"`
}

func (StationDTO) TableName() string {
	return "stations"
}

func fromDomain(s *station.Station) StationDTO {
	return StationDTO{
		ID:         s.ID().Bytes(),
		Code:       s.Code(),
		Name:       s.Name(),
		Kind:       s.Kind().String(),
		StageOrder: s.StageOrder(),
		Active:     s.IsActive(),
	}
}

func toDomain(dto StationDTO) (*station.Station, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	kind, err := station.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	return station.RestoreStation(id, dto.Code, dto.Name, kind, dto.StageOrder, dto.Active)
}
