package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// Ensure TxRunner implements billing.BillingTxRunner and notify.NotifyTxRunner.
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ notify.NotifyTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con los repos del lote de facturación
// atados a ella y hace Commit o Rollback. La creación de la factura y el
// avance de la lectura del medidor viven en el mismo callback: el rollback
// deshace ambos o ninguno.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	apartmentRepo repository.ApartmentRepository,
	billRepo repository.BillRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	apartmentRepo := NewApartmentRepository(tx)
	billRepo := NewBillRepository(tx)

	if err := fn(apartmentRepo, billRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunNotify inicia una transacción con los repos del despacho de
// notificaciones (registro de envío + estado de la factura).
func (r *TxRunner) RunNotify(ctx context.Context, fn func(
	billRepo repository.BillRepository,
	notificationRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	billRepo := NewBillRepository(tx)
	notificationRepo := NewNotificationRepository(tx)

	if err := fn(billRepo, notificationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
