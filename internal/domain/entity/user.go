package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleFarmaceutico = "farmaceutico"
	RoleCajero       = "cajero"
)

// ValidRole valida el rol de un usuario.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleFarmaceutico, RoleCajero:
		return true
	}
	return false
}

// User representa un usuario del sistema (el actor de los campos de auditoría).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, farmaceutico, cajero
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
