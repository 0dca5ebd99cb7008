package notify

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

// CurrencyFormatter formatea montos según la moneda y locale configurados.
// Solo para presentación: los cálculos siguen siendo decimal exacto.
type CurrencyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewCurrencyFormatter construye el formateador. Códigos o locales inválidos
// caen a COP / es-CO en lugar de fallar: formatear nunca debe tumbar un envío.
func NewCurrencyFormatter(code, locale string) CurrencyFormatter {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO("COP")
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-CO")
	}
	return CurrencyFormatter{unit: unit, printer: message.NewPrinter(tag)}
}

// Format renderiza un monto con símbolo de moneda, ej. "$ 11.000".
func (f CurrencyFormatter) Format(amount decimal.Decimal) string {
	return f.printer.Sprintf("%v", currency.NarrowSymbol(f.unit.Amount(amount.InexactFloat64())))
}

// RenderMessage produce el mensaje de notificación de una factura de agua a
// partir de la plantilla fija: arrendatario, edificio, apartamento, periodo,
// consumo y desglose de montos formateados por moneda.
func RenderMessage(
	f CurrencyFormatter,
	bill *entity.Bill,
	apartment *entity.Apartment,
	building *entity.Building,
	invoice *entity.UtilityInvoice,
) string {
	const layout = "02/01/2006"
	return fmt.Sprintf(
		"Hola %s. Factura de agua de %s, apto %s, periodo %s a %s: consumo %s m3, agua %s, bombeo %s, total a pagar %s.",
		apartment.TenantName,
		building.Name,
		apartment.Number,
		invoice.PeriodStart.Format(layout),
		invoice.PeriodEnd.Format(layout),
		bill.Consumed.String(),
		f.Format(bill.WaterAmount),
		f.Format(bill.PumpAmount),
		f.Format(bill.TotalAmount),
	)
}
