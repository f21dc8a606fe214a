package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
)

// CustomerHandler gestión de clientes (solo admin).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "nama, email, password"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "cliente creado", Data: out})
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.UpdateCustomerRequest  true  "campos opcionales"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateCustomerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cliente actualizado", Data: out})
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondConflict(c, err, "CUSTOMER_HAS_ORDERS", "el cliente tiene pedidos activos")
	}
	return c.JSON(dto.MessageResponse{Message: "cliente eliminado"})
}
