package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación de BillRepository (usable con pool o tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, apartment_id, invoice_id, previous_reading, current_reading, consumed,
		water_rate, pump_rate, water_amount, pump_amount, total_amount,
		is_paid, notification_status, notification_error, notified_at, created_at, updated_at`

// Create persiste una factura de apartamento. El constraint único sobre
// (apartment_id, invoice_id) respalda la idempotencia del lote: el chequeo
// previo de existencia puede perder la carrera, el constraint no.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (id, apartment_id, invoice_id, previous_reading, current_reading, consumed,
			water_rate, pump_rate, water_amount, pump_amount, total_amount,
			is_paid, notification_status, notification_error, notified_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.ApartmentID, bill.InvoiceID,
		bill.PreviousReading, bill.CurrentReading, bill.Consumed,
		bill.WaterRate, bill.PumpRate, bill.WaterAmount, bill.PumpAmount, bill.TotalAmount,
		bill.IsPaid, bill.NotificationStatus, bill.NotificationError, bill.NotifiedAt,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBill
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ApartmentID, &b.InvoiceID,
		&b.PreviousReading, &b.CurrentReading, &b.Consumed,
		&b.WaterRate, &b.PumpRate, &b.WaterAmount, &b.PumpAmount, &b.TotalAmount,
		&b.IsPaid, &b.NotificationStatus, &b.NotificationError, &b.NotifiedAt,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// ExistsByApartmentAndInvoice verifica si ya existe factura para la unidad en esa factura de acueducto.
func (r *BillRepo) ExistsByApartmentAndInvoice(apartmentID, invoiceID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM bills WHERE apartment_id = $1 AND invoice_id = $2)`,
		apartmentID, invoiceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists bill: %w", err)
	}
	return exists, nil
}

// CountByInvoice cuenta las facturas de apartamento de una factura de acueducto.
func (r *BillRepo) CountByInvoice(invoiceID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM bills WHERE invoice_id = $1`, invoiceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bills: %w", err)
	}
	return count, nil
}

// ListByInvoice lista las facturas de apartamento de una factura de acueducto.
func (r *BillRepo) ListByInvoice(invoiceID string) ([]*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(
			&b.ID, &b.ApartmentID, &b.InvoiceID,
			&b.PreviousReading, &b.CurrentReading, &b.Consumed,
			&b.WaterRate, &b.PumpRate, &b.WaterAmount, &b.PumpAmount, &b.TotalAmount,
			&b.IsPaid, &b.NotificationStatus, &b.NotificationError, &b.NotifiedAt,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateNotification fija el resultado del último intento de envío.
func (r *BillRepo) UpdateNotification(id, status, errText string, notifiedAt *time.Time) error {
	query := `
		UPDATE bills SET notification_status = $2, notification_error = $3, notified_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, errText, notifiedAt, time.Now())
	if err != nil {
		return fmt.Errorf("update bill notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkPaid marca la factura como pagada.
func (r *BillRepo) MarkPaid(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE bills SET is_paid = true, updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("mark bill paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
