package billing

import "github.com/shopspring/decimal"

// Amounts desglose monetario de una factura de apartamento.
type Amounts struct {
	Water decimal.Decimal // Consumed * Rates.Water
	Pump  decimal.Decimal // Consumed * Rates.Pump
	Total decimal.Decimal // Water + Pump
}

// Calculate calcula el desglose monetario para un consumo dado con las tarifas
// del lote. Función pura; decimal exacto para que el total cuadre sin deriva
// de redondeo a través de miles de unidades.
func Calculate(consumed decimal.Decimal, rates Rates) Amounts {
	water := consumed.Mul(rates.Water)
	pump := consumed.Mul(rates.Pump)
	return Amounts{
		Water: water,
		Pump:  pump,
		Total: water.Add(pump),
	}
}
