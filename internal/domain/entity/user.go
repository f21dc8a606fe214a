package entity

import "time"

// Roles válidos para User.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User representa una cuenta de la tienda (cliente o administrador).
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario administra la tienda.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
