package entity

import "time"

// Contact mensaje del formulario público. Solo se inserta y se lista.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
