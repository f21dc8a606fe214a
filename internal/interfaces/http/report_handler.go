package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/report"
)

// ReportHandler reporte de ventas del panel admin.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Reporte de ventas
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        startDate   query  string  false  "YYYY-MM-DD"
// @Param        endDate     query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        categoryId  query  int     false  "Categoría"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transaction [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.SalesReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Sales(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        startDate   query  string  false  "YYYY-MM-DD"
// @Param        endDate     query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        categoryId  query  int     false  "Categoría"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transaction/pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	var q dto.SalesReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pdf, err := h.uc.SalesPDF(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("laporan-penjualan-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
