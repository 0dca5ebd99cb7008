package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"   // sin restricción de alcance
	RoleManager = "manager" // limitado a los edificios que administra (buildings.manager_id)
)

// User usuario del sistema (administrador o manager de edificios).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
