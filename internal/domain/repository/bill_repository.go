package repository

import (
	"time"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

// BillRepository puerto de persistencia para facturas por apartamento.
type BillRepository interface {
	Create(bill *entity.Bill) error
	GetByID(id string) (*entity.Bill, error)
	ExistsByApartmentAndInvoice(apartmentID, invoiceID string) (bool, error)
	CountByInvoice(invoiceID string) (int, error)
	ListByInvoice(invoiceID string) ([]*entity.Bill, error)
	// UpdateNotification fija el resultado del último intento de envío.
	UpdateNotification(id, status, errText string, notifiedAt *time.Time) error
	MarkPaid(id string) error
}
