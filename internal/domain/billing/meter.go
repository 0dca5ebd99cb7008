package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
)

// ValidateReading valida la lectura actual de un medidor contra la última
// lectura facturada y calcula el consumo del periodo.
//
// Reglas:
//   - currentText debe parsear como decimal no negativo -> ErrInvalidReading.
//   - current < previous -> ErrMeterRegression (la unidad queda fuera del lote,
//     sin mutación de estado).
//   - current == previous es válido: consumo cero, factura por monto cero.
func ValidateReading(previous decimal.Decimal, currentText string) (current, consumed decimal.Decimal, err error) {
	current, perr := decimal.NewFromString(strings.TrimSpace(currentText))
	if perr != nil || current.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidReading
	}
	if current.LessThan(previous) {
		return decimal.Zero, decimal.Zero, domain.ErrMeterRegression
	}
	return current, current.Sub(previous), nil
}
