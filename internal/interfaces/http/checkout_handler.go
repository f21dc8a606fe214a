package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/cart"
	"github.com/jhoicas/storefront-api/internal/application/dto"
)

// CheckoutHandler carrito del usuario autenticado.
type CheckoutHandler struct {
	uc *cart.CartUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *cart.CartUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// List godoc
// @Summary      Ver carrito
// @Tags         checkout
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.CheckoutResponse
// @Router       /api/checkout [get]
func (h *CheckoutHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ver línea del carrito
// @Tags         checkout
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID de la línea"
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/{id} [get]
func (h *CheckoutHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar al carrito
// @Description  Si el producto ya está en el carrito se suma la cantidad.
// @Tags         checkout
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "productId, quantity"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "producto agregado al carrito", Data: out})
}

// Update godoc
// @Summary      Cambiar cantidad
// @Tags         checkout
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la línea"
// @Param        body  body  dto.UpdateCartRequest  true  "quantity"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/checkout/{id} [put]
func (h *CheckoutHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateCartRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "carrito actualizado", Data: out})
}

// Delete godoc
// @Summary      Quitar del carrito
// @Tags         checkout
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID de la línea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/{id} [delete]
func (h *CheckoutHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Remove(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto quitado del carrito"})
}
