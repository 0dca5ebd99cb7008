package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBuildingRequest alta de edificio.
type CreateBuildingRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	ManagerID string `json:"manager_id"`
}

// BuildingResponse edificio para respuestas.
type BuildingResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	ManagerID string    `json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateApartmentRequest alta de apartamento. La lectura inicial del medidor
// es la línea base del primer periodo facturado.
type CreateApartmentRequest struct {
	Number         string          `json:"number"`
	TenantName     string          `json:"tenant_name"`
	TenantPhone    string          `json:"tenant_phone"`
	InitialReading decimal.Decimal `json:"initial_reading"`
}

// UpdateApartmentRequest actualización de datos del arrendatario.
// No permite tocar la lectura del medidor: esa solo avanza al facturar.
type UpdateApartmentRequest struct {
	Number      string `json:"number"`
	TenantName  string `json:"tenant_name"`
	TenantPhone string `json:"tenant_phone"`
}

// ApartmentResponse apartamento para respuestas.
type ApartmentResponse struct {
	ID              string          `json:"id"`
	BuildingID      string          `json:"building_id"`
	Number          string          `json:"number"`
	TenantName      string          `json:"tenant_name"`
	TenantPhone     string          `json:"tenant_phone"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CreatedAt       time.Time       `json:"created_at"`
}
