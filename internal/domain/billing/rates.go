// Package billing contiene el núcleo de cálculo de la facturación de agua:
// resolución de tarifas, validación de lecturas de medidor y cálculo de montos.
// Todo en decimal exacto (shopspring/decimal); sin efectos secundarios ni I/O.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

// Rates tarifas por m³ derivadas una sola vez por lote y reutilizadas para
// todas las unidades: así el costo compartido se reparte proporcional al
// consumo y no en partes iguales.
type Rates struct {
	Water decimal.Decimal // TotalCost / TotalConsumption
	Pump  decimal.Decimal // TotalSharedCostPerPeriod / TotalConsumption; cero sin configuración activa
}

// ResolveRates deriva las tarifas de agua y bombeo de una factura de acueducto.
// setting puede ser nil (o inactivo): la tarifa de bombeo queda en cero.
// Retorna ErrInvalidInvoice si el consumo total declarado no es mayor a cero.
//
// Ambas tarifas dividen por TotalConsumption de la factura, no por la suma de
// las lecturas del lote. Las dos cifras deberían coincidir pero no se
// reconcilian: facturar un subconjunto de unidades es una operación legítima
// (desocupaciones, lecturas por etapas) y puede sub- o sobre-recuperar el costo
// compartido. El resumen del lote expone ambas cifras para que el operador lo vea.
func ResolveRates(invoice *entity.UtilityInvoice, setting *entity.SharedCostSetting) (Rates, error) {
	if invoice == nil || !invoice.TotalConsumption.GreaterThan(decimal.Zero) {
		return Rates{}, domain.ErrInvalidInvoice
	}
	rates := Rates{
		Water: invoice.TotalCost.Div(invoice.TotalConsumption),
		Pump:  decimal.Zero,
	}
	if setting != nil && setting.IsActive {
		rates.Pump = setting.TotalSharedCostPerPeriod.Div(invoice.TotalConsumption)
	}
	return rates, nil
}
