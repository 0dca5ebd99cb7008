package repository

import "github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"

// BuildingRepository puerto de persistencia para edificios.
type BuildingRepository interface {
	Create(building *entity.Building) error
	GetByID(id string) (*entity.Building, error)
	List() ([]*entity.Building, error)
	ListByManager(managerID string) ([]*entity.Building, error)
}
