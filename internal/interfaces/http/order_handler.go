package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/cart"
	"github.com/jhoicas/storefront-api/internal/application/dto"
)

// OrderHandler pedidos: creación por el cliente, estado por el admin.
type OrderHandler struct {
	uc *cart.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *cart.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Convierte una línea del carrito en pedido PENDING/UNPAID y descuenta stock.
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "checkoutId, paymentMethod"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Place(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "pedido creado", Data: out})
}

// ListMine godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Todos los pedidos
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ver pedido
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), IsAdmin(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  PENDING, PAID, SHIPPED, DELIVERED o CANCELED. Cancelar devuelve el stock.
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado", Data: out})
}
