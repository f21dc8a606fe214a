package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ProductForm campos multipart de alta/edición (la imagen viaja aparte en "image").
// Los números llegan como texto y se convierten en el caso de uso.
type ProductForm struct {
	NamaBarang  string `form:"namaBarang" json:"namaBarang" validate:"required,min=1,max=200"`
	HargaBarang string `form:"hargaBarang" json:"hargaBarang" validate:"required,numeric"`
	HargaAwal   string `form:"hargaAwal" json:"hargaAwal" validate:"omitempty,numeric"`
	StokBarang  string `form:"stokBarang" json:"stokBarang" validate:"required,number"`
	CategoryID  string `form:"categoryId" json:"categoryId" validate:"required,number"`
}

// ImageUpload archivo recibido, independiente de multipart.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// CategoryRef categoría embebida en un producto.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	NamaBarang  string          `json:"namaBarang"`
	HargaBarang decimal.Decimal `json:"hargaBarang"`
	HargaAwal   decimal.Decimal `json:"hargaAwal"`
	StokBarang  int             `json:"stokBarang"`
	CategoryID  int64           `json:"categoryId"`
	Category    *CategoryRef    `json:"category,omitempty"`
	PicURL      string          `json:"picUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
