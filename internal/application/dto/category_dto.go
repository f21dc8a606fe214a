package dto

import "time"

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Nama string `json:"nama" validate:"required,min=1,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	CreatedAt time.Time `json:"createdAt"`
}
