package repository

import "github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"

// NotificationRepository puerto de persistencia para el log de envíos.
// Solo inserciones: los registros nunca se actualizan.
type NotificationRepository interface {
	Create(record *entity.NotificationRecord) error
	ListByBill(billID string) ([]*entity.NotificationRecord, error)
}
