package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
)

// errorStatus mapea errores de dominio a status y código de respuesta.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusBadRequest, "EMAIL_EXISTS"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidCheckout, fiber.StatusBadRequest, "INVALID_CHECKOUT"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError escribe el error como JSON. Los errores no mapeados se registran
// y salen como 500 genérico, sin detalle interno.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// respondConflict como respondError pero con un código propio para ErrConflict.
func respondConflict(c *fiber.Ctx, err error, code, message string) error {
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: code, Message: message})
	}
	return respondError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
}

// FiberErrorHandler respuesta JSON para errores que escapan de los handlers (404 de ruta, panics recuperados).
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message})
	}
	return respondError(c, err)
}
