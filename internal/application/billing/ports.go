package billing

import (
	"context"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos
// que el lote de facturación necesita atados a esa transacción. La creación de
// la factura y el avance de la lectura del medidor ocurren dentro del mismo
// callback: o se confirman juntas o ninguna.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		apartmentRepo repository.ApartmentRepository,
		billRepo repository.BillRepository,
	) error) error
}
