package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// DateLayout formato de startDate/endDate.
const DateLayout = "2006-01-02"

// SalesPDFGenerator dibuja el reporte de ventas.
type SalesPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, report *dto.SalesReportResponse) ([]byte, error)
}

// ReportUseCase reporte de ventas del panel admin (JSON y PDF).
type ReportUseCase struct {
	sales     repository.SalesRepository
	generator SalesPDFGenerator
	loc       *time.Location
}

// NewReportUseCase construye el caso de uso. Las fechas del filtro se interpretan en loc
// (nil = hora local del servidor).
func NewReportUseCase(sales repository.SalesRepository, generator SalesPDFGenerator, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{sales: sales, generator: generator, loc: loc}
}

// Sales filas por pedido no cancelado dentro del rango y totales.
// endDate es inclusiva. ErrInvalidInput con fechas mal formadas o invertidas.
func (uc *ReportUseCase) Sales(ctx context.Context, q dto.SalesReportQuery) (*dto.SalesReportResponse, error) {
	filter, err := uc.parseFilter(q)
	if err != nil {
		return nil, err
	}
	lines, err := uc.sales.ListSales(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesReportResponse{
		StartDate:    strings.TrimSpace(q.StartDate),
		EndDate:      strings.TrimSpace(q.EndDate),
		CategoryID:   q.CategoryID,
		Rows:         make([]dto.SalesRow, 0, len(lines)),
		TotalRevenue: decimal.Zero,
		GeneratedAt:  time.Now(),
	}
	for _, l := range lines {
		total := l.Total()
		out.Rows = append(out.Rows, dto.SalesRow{
			OrderID:      l.OrderID,
			Tanggal:      l.OrderedAt,
			Status:       l.Status,
			NamaBarang:   l.ProductName,
			CategoryID:   l.CategoryID,
			CategoryNama: l.CategoryName,
			Quantity:     l.Quantity,
			HargaBarang:  l.UnitPrice,
			Total:        total,
		})
		out.TotalRevenue = out.TotalRevenue.Add(total)
		out.TotalItems += l.Quantity
	}
	return out, nil
}

// SalesPDF el mismo reporte como PDF.
func (uc *ReportUseCase) SalesPDF(ctx context.Context, q dto.SalesReportQuery) ([]byte, error) {
	rep, err := uc.Sales(ctx, q)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateSalesReport(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("report: generar pdf: %w", err)
	}
	return pdf, nil
}

func (uc *ReportUseCase) parseFilter(q dto.SalesReportQuery) (entity.SalesFilter, error) {
	var f entity.SalesFilter
	if q.CategoryID < 0 {
		return f, fmt.Errorf("%w: categoryId inválido", domain.ErrInvalidInput)
	}
	f.CategoryID = q.CategoryID
	if s := strings.TrimSpace(q.StartDate); s != "" {
		from, err := time.ParseInLocation(DateLayout, s, uc.loc)
		if err != nil {
			return f, fmt.Errorf("%w: startDate debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		f.From = &from
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		end, err := time.ParseInLocation(DateLayout, s, uc.loc)
		if err != nil {
			return f, fmt.Errorf("%w: endDate debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		// fin exclusivo al día siguiente
		to := end.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, fmt.Errorf("%w: startDate posterior a endDate", domain.ErrInvalidInput)
	}
	return f, nil
}
