package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleVentas = "ventas"
	RoleStock  = "stock"
)

// User usuario del sistema. El nombre de usuario viaja como actor explícito en
// cada operación que muta stock o ventas.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin | ventas | stock
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
