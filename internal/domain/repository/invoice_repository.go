package repository

import "github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"

// UtilityInvoiceRepository puerto de persistencia para facturas de acueducto.
type UtilityInvoiceRepository interface {
	Create(invoice *entity.UtilityInvoice) error
	GetByID(id string) (*entity.UtilityInvoice, error)
	ListByBuilding(buildingID string) ([]*entity.UtilityInvoice, error)
	Delete(id string) error
}
