package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
)

// ContactHandler formulario de contacto (público).
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar mensaje de contacto
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "name, email, message"
// @Success      201   {object}  dto.ContactCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ContactCreatedResponse{Message: "mensaje enviado", Contact: *out})
}

// List godoc
// @Summary      Listar mensajes de contacto
// @Tags         contact
// @Produce      json
// @Success      200  {array}  dto.ContactResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
