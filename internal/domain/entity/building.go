package entity

import "time"

// Building edificio administrado. ManagerID referencia al usuario con rol manager
// responsable del edificio; el alcance de autorización se resuelve con este campo.
type Building struct {
	ID        string
	Name      string
	Address   string
	ManagerID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
