package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
)

// CategoryHandler lectura pública y CRUD de admin.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/category [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría
// @Tags         categories
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/category/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear categoría
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "nama"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/category [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "categoría creada", Data: out})
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "nama"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/category/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CategoryRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría actualizada", Data: out})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/category/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondConflict(c, err, "CATEGORY_IN_USE", "la categoría todavía tiene productos")
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}
