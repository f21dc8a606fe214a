package usecase_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/memorytest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeImages struct {
	saved   []string
	removed []string
	fail    error
}

func (f *fakeImages) Save(originalName string, _ int64, content io.Reader) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	_, _ = io.Copy(io.Discard, content)
	name := fmt.Sprintf("img%d-%s", len(f.saved)+1, strings.ToLower(originalName))
	f.saved = append(f.saved, name)
	return name, nil
}

func (f *fakeImages) Remove(name string) error {
	f.removed = append(f.removed, name)
	return nil
}

type fakeCache struct {
	items       map[int64][]dto.ProductResponse
	invalidated int
	hits        int
}

func newFakeCache() *fakeCache { return &fakeCache{items: map[int64][]dto.ProductResponse{}} }

func (f *fakeCache) GetProducts(_ context.Context, categoryID int64) ([]dto.ProductResponse, bool) {
	items, ok := f.items[categoryID]
	if ok {
		f.hits++
	}
	return items, ok
}

func (f *fakeCache) SetProducts(_ context.Context, categoryID int64, items []dto.ProductResponse) {
	f.items[categoryID] = items
}

func (f *fakeCache) Invalidate(context.Context) {
	f.invalidated++
	f.items = map[int64][]dto.ProductResponse{}
}

func image(name string) *dto.ImageUpload {
	return &dto.ImageUpload{Filename: name, Size: 4, Content: strings.NewReader("data")}
}

type catalog struct {
	store      *memorytest.Store
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	images     *fakeImages
	cache      *fakeCache
	sembako    *dto.CategoryResponse
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	store := memorytest.NewStore()
	images := &fakeImages{}
	cache := newFakeCache()
	c := &catalog{
		store:      store,
		products:   usecase.NewProductUseCase(store.Products(), store.Categories(), images, cache, zerolog.Nop()),
		categories: usecase.NewCategoryUseCase(store.Categories(), cache),
		images:     images,
		cache:      cache,
	}
	var err error
	c.sembako, err = c.categories.Create(context.Background(), dto.CategoryRequest{Nama: "Sembako"})
	require.NoError(t, err)
	return c
}

func (c *catalog) form(price, stock string) dto.ProductForm {
	return dto.ProductForm{
		NamaBarang:  "Minyak Goreng 2L",
		HargaBarang: price,
		HargaAwal:   "40000",
		StokBarang:  stock,
		CategoryID:  fmt.Sprint(c.sembako.ID),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	c := newCatalog(t)

	out, err := c.products.Create(context.Background(), c.form("35000.50", "12"), image("Minyak.PNG"))
	require.NoError(t, err)
	assert.Equal(t, "Minyak Goreng 2L", out.NamaBarang)
	assert.True(t, decimal.RequireFromString("35000.50").Equal(out.HargaBarang))
	assert.Equal(t, 12, out.StokBarang)
	assert.Equal(t, "img1-minyak.png", out.PicURL)
	require.NotNil(t, out.Category)
	assert.Equal(t, "Sembako", out.Category.Nama)
}

func TestProductCreate_Rechazos(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	cases := map[string]dto.ProductForm{
		"precio negativo":    c.form("-1", "1"),
		"precio no numérico": c.form("abc", "1"),
		"stock negativo":     c.form("1000", "-3"),
		"stock decimal":      c.form("1000", "1.5"),
	}
	for name, form := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.products.Create(ctx, form, image("a.jpg"))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	t.Run("categoría inexistente", func(t *testing.T) {
		form := c.form("1000", "1")
		form.CategoryID = "9999"
		_, err := c.products.Create(ctx, form, image("a.jpg"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("sin imagen", func(t *testing.T) {
		_, err := c.products.Create(ctx, c.form("1000", "1"), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	assert.Empty(t, c.images.saved, "ningún rechazo guarda imagen")
	list, err := c.products.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductUpdate_ImagenNuevaBorraLaAnterior(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	created, err := c.products.Create(ctx, c.form("1000", "1"), image("a.jpg"))
	require.NoError(t, err)

	updated, err := c.products.Update(ctx, created.ID, c.form("2000", "5"), nil)
	require.NoError(t, err)
	assert.Equal(t, created.PicURL, updated.PicURL, "sin imagen se conserva la actual")
	assert.Equal(t, 5, updated.StokBarang)
	assert.Empty(t, c.images.removed)

	updated, err = c.products.Update(ctx, created.ID, c.form("2000", "5"), image("b.webp"))
	require.NoError(t, err)
	assert.Equal(t, "img2-b.webp", updated.PicURL)
	assert.Equal(t, []string{created.PicURL}, c.images.removed)

	_, err = c.products.Update(ctx, 9999, c.form("2000", "5"), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	created, err := c.products.Create(ctx, c.form("1000", "1"), image("a.jpg"))
	require.NoError(t, err)

	require.NoError(t, c.products.Delete(ctx, created.ID))
	assert.Equal(t, []string{created.PicURL}, c.images.removed)

	assert.ErrorIs(t, c.products.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = c.products.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_CacheSeInvalidaConMutaciones(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	_, err := c.products.Create(ctx, c.form("1000", "1"), image("a.jpg"))
	require.NoError(t, err)

	first, err := c.products.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	_, err = c.products.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, c.cache.hits)

	before := c.cache.invalidated
	_, err = c.products.Create(ctx, c.form("500", "2"), image("b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, before+1, c.cache.invalidated)

	second, err := c.products.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestProductList_FiltroCategoria(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	minuman, err := c.categories.Create(ctx, dto.CategoryRequest{Nama: "Minuman"})
	require.NoError(t, err)

	_, err = c.products.Create(ctx, c.form("1000", "1"), image("a.jpg"))
	require.NoError(t, err)
	form := c.form("8000", "3")
	form.CategoryID = fmt.Sprint(minuman.ID)
	_, err = c.products.Create(ctx, form, image("b.jpg"))
	require.NoError(t, err)

	list, err := c.products.List(ctx, entity.ProductFilter{CategoryID: minuman.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Minuman", list[0].Category.Nama)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryDelete(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	_, err := c.products.Create(ctx, c.form("1000", "1"), image("a.jpg"))
	require.NoError(t, err)
	assert.ErrorIs(t, c.categories.Delete(ctx, c.sembako.ID), domain.ErrConflict)
	assert.ErrorIs(t, c.categories.Delete(ctx, 9999), domain.ErrNotFound)

	empty, err := c.categories.Create(ctx, dto.CategoryRequest{Nama: "Kosong"})
	require.NoError(t, err)
	require.NoError(t, c.categories.Delete(ctx, empty.ID))
	_, err = c.categories.GetByID(ctx, empty.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUpdate(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()

	out, err := c.categories.Update(ctx, c.sembako.ID, dto.CategoryRequest{Nama: " Sembako Murah "})
	require.NoError(t, err)
	assert.Equal(t, "Sembako Murah", out.Nama)

	_, err = c.categories.Update(ctx, 9999, dto.CategoryRequest{Nama: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.categories.Update(ctx, c.sembako.ID, dto.CategoryRequest{Nama: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes y contacto
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerCRUD(t *testing.T) {
	store := memorytest.NewStore()
	uc := usecase.NewCustomerUseCase(store.Users(), store.Orders())
	ctx := context.Background()

	budi, err := uc.Create(ctx, dto.CreateCustomerRequest{Nama: "Budi", Email: "budi@mail.test", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, budi.Role)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Nama: "Otro", Email: "BUDI@mail.test", Password: "rahasia"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	stored, err := store.Users().GetByID(ctx, budi.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia", stored.PasswordHash, "el password nunca se guarda en claro")

	siti, err := uc.Create(ctx, dto.CreateCustomerRequest{Nama: "Siti", Email: "siti@mail.test", Password: "rahasia"})
	require.NoError(t, err)

	taken := "budi@mail.test"
	_, err = uc.Update(ctx, siti.ID, dto.UpdateCustomerRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	name, password := "Siti Aminah", "baru123"
	updated, err := uc.Update(ctx, siti.ID, dto.UpdateCustomerRequest{Nama: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Siti Aminah", updated.Nama)
	after, err := store.Users().GetByID(ctx, siti.ID)
	require.NoError(t, err)
	assert.NotEqual(t, stored.PasswordHash, after.PasswordHash)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, uc.Delete(ctx, budi.ID))
	assert.ErrorIs(t, uc.Delete(ctx, budi.ID), domain.ErrNotFound)
	_, err = uc.GetByID(ctx, budi.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomer_CuentasAdminNoSeTocan(t *testing.T) {
	store := memorytest.NewStore()
	uc := usecase.NewCustomerUseCase(store.Users(), store.Orders())
	ctx := context.Background()

	admin := &entity.User{Name: "Admin", Email: "admin@toko.test", PasswordHash: "x", Role: entity.RoleAdmin}
	require.NoError(t, store.Users().Create(ctx, admin))

	_, err := uc.GetByID(ctx, admin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	name := "Otro"
	_, err = uc.Update(ctx, admin.ID, dto.UpdateCustomerRequest{Nama: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, admin.ID), domain.ErrNotFound)

	still, err := store.Users().GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, "Admin", still.Name)
}

func TestCustomerDelete_ConPedidoActivo_Conflict(t *testing.T) {
	store := memorytest.NewStore()
	uc := usecase.NewCustomerUseCase(store.Users(), store.Orders())
	ctx := context.Background()

	budi, err := uc.Create(ctx, dto.CreateCustomerRequest{Nama: "Budi", Email: "budi@mail.test", Password: "rahasia"})
	require.NoError(t, err)
	cat := &entity.Category{Name: "Sembako"}
	require.NoError(t, store.Categories().Create(ctx, cat))
	product := &entity.Product{Name: "Gula 1kg", Price: decimal.NewFromInt(18000), Stock: 10, CategoryID: cat.ID}
	require.NoError(t, store.Products().Create(ctx, product))
	line := &entity.Checkout{UserID: budi.ID, ProductID: product.ID, Quantity: 1, Status: entity.CheckoutOrdered}
	require.NoError(t, store.Checkouts().Create(ctx, line))
	order := &entity.Order{UserID: budi.ID, CheckoutID: line.ID, Status: entity.OrderPending, PaymentMethod: "cod", PaymentStatus: entity.PaymentUnpaid}
	require.NoError(t, store.Orders().Create(ctx, order))

	assert.ErrorIs(t, uc.Delete(ctx, budi.ID), domain.ErrConflict)
	_, err = uc.GetByID(ctx, budi.ID)
	require.NoError(t, err, "el cliente sigue existiendo")

	order.Status = entity.OrderCanceled
	require.NoError(t, store.Orders().UpdateStatus(ctx, order))
	require.NoError(t, uc.Delete(ctx, budi.ID))
}

func TestContact(t *testing.T) {
	store := memorytest.NewStore()
	uc := usecase.NewContactUseCase(store.Contacts())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ContactRequest{Name: "Budi", Email: "budi@mail.test", Message: "Halo"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.ContactRequest{Name: "Siti", Email: "siti@mail.test", Message: "Stok beras?"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.ContactRequest{Name: "X", Email: "x@mail.test", Message: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "más reciente primero")
}
