package dto

import "time"

// RegisterRequest entrada para registro (auth). Role vacío = customer.
type RegisterRequest struct {
	Nama     string `json:"nama" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=customer admin"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse datos del usuario + token (el mismo que va en la cookie de sesión).
type LoginResponse struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCustomerRequest alta de cliente desde el panel admin.
type CreateCustomerRequest struct {
	Nama     string `json:"nama" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=customer admin"`
}

// UpdateCustomerRequest campos opcionales; password se vuelve a hashear.
type UpdateCustomerRequest struct {
	Nama     *string `json:"nama" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=customer admin"`
}
