package notify

import (
	"context"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// SendRequest payload del gateway de mensajería.
type SendRequest struct {
	Sender     string   `json:"sender"`
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
}

// SendResult resultado de la entrega al gateway.
type SendResult struct {
	Accepted bool   // true si el gateway aceptó el mensaje
	Error    string // mensaje de error del gateway (puede ser vacío)
}

// MessageGateway puerto de salida hacia el gateway de mensajería HTTP.
// La implementación concreta vive en infrastructure/gateway; para tests se
// inyecta un fake. Send debe respetar el deadline del contexto.
type MessageGateway interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
}

// NotifyTxRunner ejecuta una función dentro de una transacción con los repos
// del despacho atados a ella: el registro de envío y el estado de la factura
// se escriben juntos o no se escriben.
type NotifyTxRunner interface {
	RunNotify(ctx context.Context, fn func(
		billRepo repository.BillRepository,
		notificationRepo repository.NotificationRepository,
	) error) error
}
