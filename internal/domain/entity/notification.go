package entity

import "time"

// Resultados de un intento de notificación.
const (
	OutcomeSent      = "sent"
	OutcomeFailed    = "failed"
	OutcomeNoContact = "no_contact"
)

// NotificationRecord registro append-only de un intento de envío para una factura.
// Nunca se actualiza después de creado; reintentos generan registros nuevos.
type NotificationRecord struct {
	ID        string
	BillID    string
	Recipient string // teléfono del arrendatario; vacío cuando Outcome es no_contact
	Message   string // mensaje renderizado tal como se entregó (o se habría entregado)
	Outcome   string // sent | failed | no_contact
	Error     string // texto del error del gateway, si Outcome es failed
	CreatedAt time.Time
}
