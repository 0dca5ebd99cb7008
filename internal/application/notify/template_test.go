package notify_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
)

func TestCurrencyFormatter_IncluyeSimbolo(t *testing.T) {
	f := notify.NewCurrencyFormatter("COP", "es-CO")
	got := f.Format(decimal.NewFromInt(11000))
	assert.Contains(t, got, "$", "el monto lleva símbolo de moneda: %q", got)
}

func TestCurrencyFormatter_CodigoInvalidoCaeADefecto(t *testing.T) {
	// Un código o locale corrupto no puede tumbar un envío.
	f := notify.NewCurrencyFormatter("???", "not-a-locale")
	got := f.Format(decimal.NewFromInt(100))
	assert.NotEmpty(t, got)
}

func TestRenderMessage_PlantillaCompleta(t *testing.T) {
	f := notify.NewCurrencyFormatter("COP", "es-CO")
	bill := &entity.Bill{
		Consumed:    decimal.NewFromInt(20),
		WaterAmount: decimal.NewFromInt(10000),
		PumpAmount:  decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(11000),
	}
	apartment := &entity.Apartment{Number: "101", TenantName: "Ana"}
	building := &entity.Building{Name: "Torre Norte"}
	invoice := &entity.UtilityInvoice{
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}

	msg := notify.RenderMessage(f, bill, apartment, building, invoice)

	assert.Contains(t, msg, "Ana")
	assert.Contains(t, msg, "Torre Norte")
	assert.Contains(t, msg, "apto 101")
	assert.Contains(t, msg, "01/07/2026")
	assert.Contains(t, msg, "31/07/2026")
	assert.Contains(t, msg, "20 m3")
}
