package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/infrastructure/pdf"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":          "Rp 0",
		"950":        "Rp 950",
		"65000":      "Rp 65.000",
		"1234567.50": "Rp 1.234.568",
		"1000000":    "Rp 1.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatRupiah(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateSalesReport(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator("Toko Sembako")
	rep := &dto.SalesReportResponse{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		Rows: []dto.SalesRow{{
			OrderID: 7, Tanggal: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), Status: "PAID",
			NamaBarang: "Beras 5kg", CategoryID: 1, CategoryNama: "Sembako", Quantity: 2,
			HargaBarang: decimal.NewFromInt(65000), Total: decimal.NewFromInt(130000),
		}},
		TotalRevenue: decimal.NewFromInt(130000),
		TotalItems:   2,
		GeneratedAt:  time.Now(),
	}

	out, err := gen.GenerateSalesReport(context.Background(), rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe producir un PDF")
}

func TestGenerateSalesReport_SinFilas(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator("Toko Sembako")
	out, err := gen.GenerateSalesReport(context.Background(), &dto.SalesReportResponse{
		Rows:         []dto.SalesRow{},
		TotalRevenue: decimal.Zero,
		GeneratedAt:  time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
