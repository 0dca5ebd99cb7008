package repository

import (
	"github.com/shopspring/decimal"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

// ApartmentRepository puerto de persistencia para apartamentos.
//
// GetByIDForUpdate bloquea la fila del apartamento (SELECT ... FOR UPDATE) y por
// eso solo tiene sentido sobre un repo atado a una transacción: es la primitiva
// que serializa lotes concurrentes que tocan la misma unidad sin bloquear la
// tabla entera. UpdatePreviousReading avanza la línea base del medidor y debe
// ejecutarse en la misma transacción que la creación de la factura.
type ApartmentRepository interface {
	Create(apartment *entity.Apartment) error
	Update(apartment *entity.Apartment) error
	GetByID(id string) (*entity.Apartment, error)
	GetByIDForUpdate(id string) (*entity.Apartment, error)
	ListByBuilding(buildingID string) ([]*entity.Apartment, error)
	UpdatePreviousReading(id string, reading decimal.Decimal) error
}
