package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de notificación de una factura por apartamento.
const (
	NotificationNotSent   = "not_sent"   // aún no se ha intentado
	NotificationSent      = "sent"       // gateway confirmó el envío
	NotificationFailed    = "failed"     // gateway falló o expiró el timeout
	NotificationNoContact = "no_contact" // apartamento sin teléfono; no se intentó
)

// Bill factura de agua de un apartamento para una factura de acueducto.
// Única por (ApartmentID, InvoiceID) — constraint en DB y verificación en el lote.
//
// Los campos de lectura y montos se fijan al crearla; NotificationStatus,
// NotificationError y NotifiedAt los muta el dispatcher, una vez por intento.
// IsPaid es mutable después de la creación y no lo toca el motor de facturación.
type Bill struct {
	ID                 string
	ApartmentID        string
	InvoiceID          string
	PreviousReading    decimal.Decimal
	CurrentReading     decimal.Decimal
	Consumed           decimal.Decimal // CurrentReading - PreviousReading, >= 0
	WaterRate          decimal.Decimal // costo total / consumo total de la factura de acueducto
	PumpRate           decimal.Decimal // costo compartido / consumo total; cero sin configuración activa
	WaterAmount        decimal.Decimal // Consumed * WaterRate
	PumpAmount         decimal.Decimal // Consumed * PumpRate
	TotalAmount        decimal.Decimal // WaterAmount + PumpAmount
	IsPaid             bool
	NotificationStatus string
	NotificationError  string
	NotifiedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
