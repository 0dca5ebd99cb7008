package repository

import "github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"

// SharedCostRepository puerto de persistencia para el costo compartido.
// CreateAndActivate desactiva la configuración activa anterior del edificio
// y crea la nueva como activa (a lo sumo una activa por edificio).
type SharedCostRepository interface {
	CreateAndActivate(setting *entity.SharedCostSetting) error
	GetActiveByBuilding(buildingID string) (*entity.SharedCostSetting, error)
}
