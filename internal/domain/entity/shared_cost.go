package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharedCostSetting costo compartido por periodo de un edificio (ej. motobomba).
// A lo sumo una configuración activa por edificio; si no hay ninguna, la tarifa
// de bombeo del lote es cero. Se reparte proporcional al consumo de cada unidad.
type SharedCostSetting struct {
	ID                       string
	BuildingID               string
	TotalSharedCostPerPeriod decimal.Decimal
	IsActive                 bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
