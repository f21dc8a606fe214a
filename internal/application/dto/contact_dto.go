package dto

import "time"

// ContactRequest formulario público de contacto.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

// ContactResponse mensaje guardado.
type ContactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactCreatedResponse respuesta del POST /api/contact.
type ContactCreatedResponse struct {
	Message string          `json:"message"`
	Contact ContactResponse `json:"contact"`
}
