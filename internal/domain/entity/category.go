package entity

import "time"

// Category agrupa productos ("Sembako", "Minuman", ...).
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
