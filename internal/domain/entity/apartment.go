package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Apartment unidad arrendable de un edificio.
//
// PreviousReading es la última lectura facturada del medidor de agua (m³):
// es la línea base del siguiente periodo y solo avanza cuando se crea una
// factura con éxito. Nunca decrece.
//
// TenantPhone es el destino de las notificaciones; vacío => sin contacto
// (la notificación se clasifica no_contact y no se intenta el envío).
type Apartment struct {
	ID              string
	BuildingID      string
	Number          string // identificador visible de la unidad, ej. "302B"
	TenantName      string
	TenantPhone     string
	PreviousReading decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
