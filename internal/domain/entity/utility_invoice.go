package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UtilityInvoice factura de acueducto a nivel de edificio para un periodo:
// el consumo total comprado (m³) y su costo total. De aquí se deriva la tarifa
// de agua del lote. Inmutable una vez existen facturas por apartamento que la
// referencian (el borrado se bloquea en el caso de uso).
type UtilityInvoice struct {
	ID               string
	BuildingID       string
	TotalConsumption decimal.Decimal // m³; debe ser > 0 (divisor de las tarifas)
	TotalCost        decimal.Decimal
	PeriodStart      time.Time
	PeriodEnd        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
