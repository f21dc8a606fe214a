package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportQuery filtros del reporte; fechas YYYY-MM-DD, EndDate inclusive.
type SalesReportQuery struct {
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	CategoryID int64  `query:"categoryId"`
}

// SalesRow una venta (pedido no cancelado).
type SalesRow struct {
	OrderID      int64           `json:"orderId"`
	Tanggal      time.Time       `json:"tanggal"`
	Status       string          `json:"status"`
	NamaBarang   string          `json:"namaBarang"`
	CategoryID   int64           `json:"categoryId"`
	CategoryNama string          `json:"categoryNama"`
	Quantity     int             `json:"quantity"`
	HargaBarang  decimal.Decimal `json:"hargaBarang"`
	Total        decimal.Decimal `json:"total"`
}

// SalesReportResponse filas + totales.
type SalesReportResponse struct {
	StartDate    string          `json:"startDate,omitempty"`
	EndDate      string          `json:"endDate,omitempty"`
	CategoryID   int64           `json:"categoryId,omitempty"`
	Rows         []SalesRow      `json:"rows"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalItems   int             `json:"totalItems"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}
