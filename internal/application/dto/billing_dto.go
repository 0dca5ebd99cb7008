package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUtilityInvoiceRequest alta de factura de acueducto del edificio.
type CreateUtilityInvoiceRequest struct {
	TotalConsumption decimal.Decimal `json:"total_consumption"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
}

// UtilityInvoiceResponse factura de acueducto para respuestas.
type UtilityInvoiceResponse struct {
	ID               string          `json:"id"`
	BuildingID       string          `json:"building_id"`
	TotalConsumption decimal.Decimal `json:"total_consumption"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SetSharedCostRequest fija el costo compartido por periodo del edificio.
type SetSharedCostRequest struct {
	TotalSharedCostPerPeriod decimal.Decimal `json:"total_shared_cost_per_period"`
}

// SharedCostResponse configuración activa de costo compartido.
type SharedCostResponse struct {
	ID                       string          `json:"id"`
	BuildingID               string          `json:"building_id"`
	TotalSharedCostPerPeriod decimal.Decimal `json:"total_shared_cost_per_period"`
	IsActive                 bool            `json:"is_active"`
}

// MeterReadingInput una lectura enviada por el operador. CurrentReading llega
// como texto y se valida/parsea en el motor (decimal no negativo).
type MeterReadingInput struct {
	ApartmentID    string `json:"apartment_id"`
	CurrentReading string `json:"current_reading"`
}

// GenerateBillsRequest lote de lecturas contra una factura de acueducto.
type GenerateBillsRequest struct {
	InvoiceID string              `json:"invoice_id"`
	Readings  []MeterReadingInput `json:"readings"`
}

// BillItemError error por ítem del lote; el lote continúa con el resto.
type BillItemError struct {
	ApartmentID string `json:"apartment_id"`
	Reason      string `json:"reason"` // UnitNotFound | DuplicateBill | MeterRegression | InvalidReading
}

// BillSummary resumen de una factura creada por el lote.
type BillSummary struct {
	BillID          string          `json:"bill_id"`
	ApartmentID     string          `json:"apartment_id"`
	ApartmentNumber string          `json:"apartment_number"`
	Consumed        decimal.Decimal `json:"consumed"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// GenerateBillsResponse resultado del lote. BilledConsumption es la suma de los
// consumos aceptados; junto a InvoiceConsumption permite ver la divergencia con
// el total declarado de la factura (no se reconcilia automáticamente).
type GenerateBillsResponse struct {
	Created            []BillSummary   `json:"created"`
	Errors             []BillItemError `json:"errors"`
	BilledConsumption  decimal.Decimal `json:"billed_consumption"`
	InvoiceConsumption decimal.Decimal `json:"invoice_consumption"`
}

// BillResponse factura de apartamento completa.
type BillResponse struct {
	ID                 string          `json:"id"`
	ApartmentID        string          `json:"apartment_id"`
	InvoiceID          string          `json:"invoice_id"`
	PreviousReading    decimal.Decimal `json:"previous_reading"`
	CurrentReading     decimal.Decimal `json:"current_reading"`
	Consumed           decimal.Decimal `json:"consumed"`
	WaterRate          decimal.Decimal `json:"water_rate"`
	PumpRate           decimal.Decimal `json:"pump_rate"`
	WaterAmount        decimal.Decimal `json:"water_amount"`
	PumpAmount         decimal.Decimal `json:"pump_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	IsPaid             bool            `json:"is_paid"`
	NotificationStatus string          `json:"notification_status"`
	NotificationError  string          `json:"notification_error,omitempty"`
	NotifiedAt         *time.Time      `json:"notified_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}
