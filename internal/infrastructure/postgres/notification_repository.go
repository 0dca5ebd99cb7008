package postgres

import (
	"context"
	"fmt"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste un registro de intento de envío.
func (r *NotificationRepo) Create(record *entity.NotificationRecord) error {
	query := `
		INSERT INTO notification_records (id, bill_id, recipient, message, outcome, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.BillID, record.Recipient, record.Message,
		record.Outcome, record.Error, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification record: %w", err)
	}
	return nil
}

// ListByBill lista los intentos de envío de una factura, el más antiguo primero.
func (r *NotificationRepo) ListByBill(billID string) ([]*entity.NotificationRecord, error) {
	query := `
		SELECT id, bill_id, recipient, message, outcome, error, created_at
		FROM notification_records WHERE bill_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list notification records: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotificationRecord
	for rows.Next() {
		var rec entity.NotificationRecord
		if err := rows.Scan(
			&rec.ID, &rec.BillID, &rec.Recipient, &rec.Message,
			&rec.Outcome, &rec.Error, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
