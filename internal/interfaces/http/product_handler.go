package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// imageField campo multipart con la imagen del producto.
const imageField = "image"

// ProductHandler catálogo público y CRUD de admin (multipart).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        categoryId  query  int  false  "Filtrar por categoría"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	categoryID := c.QueryInt("categoryId", 0)
	if categoryID < 0 {
		categoryID = 0
	}
	out, err := h.uc.List(c.UserContext(), entity.ProductFilter{CategoryID: int64(categoryID)})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear producto
// @Tags         products
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        namaBarang   formData  string  true   "Nombre"
// @Param        hargaBarang  formData  number  true   "Precio"
// @Param        hargaAwal    formData  number  false  "Precio original"
// @Param        stokBarang   formData  int     true   "Stock"
// @Param        categoryId   formData  int     true   "Categoría"
// @Param        image        formData  file    true   "Imagen"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var form dto.ProductForm
	if ok, err := bind(c, &form); !ok {
		return err
	}
	image, closeFn, err := formImage(c)
	if err != nil {
		return badBody(c)
	}
	defer closeFn()
	out, err := h.uc.Create(c.UserContext(), form, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "producto creado", Data: out})
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Sobrescribe los campos; la imagen es opcional y reemplaza a la anterior.
// @Tags         products
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      int     true   "ID del producto"
// @Param        namaBarang   formData  string  true   "Nombre"
// @Param        hargaBarang  formData  number  true   "Precio"
// @Param        hargaAwal    formData  number  false  "Precio original"
// @Param        stokBarang   formData  int     true   "Stock"
// @Param        categoryId   formData  int     true   "Categoría"
// @Param        image        formData  file    false  "Imagen"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var form dto.ProductForm
	if ok, err := bind(c, &form); !ok {
		return err
	}
	image, closeFn, err := formImage(c)
	if err != nil {
		return badBody(c)
	}
	defer closeFn()
	out, err := h.uc.Update(c.UserContext(), id, form, image)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto actualizado", Data: out})
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondConflict(c, err, "PRODUCT_IN_USE", "el producto está en carritos o pedidos")
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// formImage abre la imagen del formulario si viene. closeFn siempre es invocable.
func formImage(c *fiber.Ctx) (*dto.ImageUpload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(imageField)
	if err != nil {
		// sin archivo: el caso de uso decide si es obligatorio
		return nil, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return uploadFrom(fh, f), func() { _ = f.Close() }, nil
}

func uploadFrom(fh *multipart.FileHeader, f multipart.File) *dto.ImageUpload {
	return &dto.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: f}
}
