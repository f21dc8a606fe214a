package cart_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/cart"
	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/memorytest"
)

// recordingCache cuenta las invalidaciones del catálogo.
type recordingCache struct {
	invalidations int
}

func (c *recordingCache) Invalidate(context.Context) { c.invalidations++ }

type fixture struct {
	store   *memorytest.Store
	catalog *recordingCache
	cart    *cart.CartUseCase
	orders  *cart.OrderUseCase
	budi    *entity.User
	siti    *entity.User
	product *entity.Product
}

// newFixture: dos clientes y un producto con stock 5.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memorytest.NewStore()

	budi := &entity.User{Name: "Budi", Email: "budi@mail.test", PasswordHash: "x", Role: entity.RoleCustomer}
	siti := &entity.User{Name: "Siti", Email: "siti@mail.test", PasswordHash: "x", Role: entity.RoleCustomer}
	require.NoError(t, store.Users().Create(ctx, budi))
	require.NoError(t, store.Users().Create(ctx, siti))

	cat := &entity.Category{Name: "Sembako"}
	require.NoError(t, store.Categories().Create(ctx, cat))
	product := &entity.Product{Name: "Beras 5kg", Price: decimal.NewFromInt(65000), Stock: 5, CategoryID: cat.ID}
	require.NoError(t, store.Products().Create(ctx, product))

	catalog := &recordingCache{}
	return &fixture{
		store:   store,
		catalog: catalog,
		cart:    cart.NewCartUseCase(store, store.Checkouts()),
		orders:  cart.NewOrderUseCase(store, store.Orders(), catalog, zerolog.Nop()),
		budi:    budi,
		siti:    siti,
		product: product,
	}
}

func (f *fixture) stock(t *testing.T) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) add(t *testing.T, user *entity.User, qty int) *dto.CheckoutResponse {
	t.Helper()
	line, err := f.cart.Add(context.Background(), user.ID, dto.AddToCartRequest{ProductID: f.product.ID, Quantity: qty})
	require.NoError(t, err)
	return line
}

// ── Carrito ───────────────────────────────────────────────────────────────────

func TestCartAdd_CreaLineaEnCarrito(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 2)

	assert.Equal(t, entity.CheckoutInCart, line.Status)
	assert.Equal(t, 2, line.Quantity)
	require.NotNil(t, line.Product)
	assert.Equal(t, "Beras 5kg", line.Product.NamaBarang)
	assert.True(t, decimal.NewFromInt(130000).Equal(line.Subtotal))
	assert.Equal(t, 5, f.stock(t), "agregar al carrito no descuenta stock")
}

func TestCartAdd_SumaEnLineaExistente(t *testing.T) {
	f := newFixture(t)
	first := f.add(t, f.budi, 2)
	second := f.add(t, f.budi, 3)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := f.cart.List(context.Background(), f.budi.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartAdd_StockInsuficiente_NoCreaLinea(t *testing.T) {
	f := newFixture(t)
	_, err := f.cart.Add(context.Background(), f.budi.ID, dto.AddToCartRequest{ProductID: f.product.ID, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := f.cart.List(context.Background(), f.budi.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartAdd_SumaSuperaStock_LineaSinCambios(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.budi, 3)

	_, err := f.cart.Add(context.Background(), f.budi.ID, dto.AddToCartRequest{ProductID: f.product.ID, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := f.cart.List(context.Background(), f.budi.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartAdd_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.cart.Add(context.Background(), f.budi.ID, dto.AddToCartRequest{ProductID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartAdd_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.cart.Add(context.Background(), f.budi.ID, dto.AddToCartRequest{ProductID: f.product.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCartGet_SoloDueno(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)

	got, err := f.cart.Get(context.Background(), f.budi.ID, line.ID)
	require.NoError(t, err)
	assert.Equal(t, line.ID, got.ID)

	_, err = f.cart.Get(context.Background(), f.siti.ID, line.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartUpdateQuantity(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)

	updated, err := f.cart.UpdateQuantity(context.Background(), f.budi.ID, line.ID, dto.UpdateCartRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = f.cart.UpdateQuantity(context.Background(), f.budi.ID, line.ID, dto.UpdateCartRequest{Quantity: 9})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.cart.UpdateQuantity(context.Background(), f.siti.ID, line.ID, dto.UpdateCartRequest{Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCartRemove(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)

	assert.ErrorIs(t, f.cart.Remove(context.Background(), f.siti.ID, line.ID), domain.ErrNotFound,
		"la línea de otro usuario se trata como inexistente")
	assert.ErrorIs(t, f.cart.Remove(context.Background(), f.budi.ID, 9999), domain.ErrNotFound)

	require.NoError(t, f.cart.Remove(context.Background(), f.budi.ID, line.ID))
	items, err := f.cart.List(context.Background(), f.budi.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRemove_LineaPedida_NoBorraPedido(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 2)
	order, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.cart.Remove(context.Background(), f.budi.ID, line.ID), domain.ErrInvalidCheckout)

	got, err := f.orders.Get(context.Background(), f.budi.ID, false, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, 3, f.stock(t))
}

// El borrado del repositorio está condicionado al estado: aunque la revisión previa
// haya visto la línea en carrito, una línea ya pedida no se borra.
func TestCheckoutDelete_SoloLineasEnCarrito(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)
	order, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	require.NoError(t, err)

	err = f.store.Checkouts().Delete(context.Background(), line.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidCheckout)

	o, err := f.store.Orders().GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.NotNil(t, o, "el pedido sigue existiendo")
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

func TestOrderPlace_CreaPedidoYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 2)

	order, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "transfer"})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.PaymentUnpaid, order.PaymentStatus)
	assert.Equal(t, "transfer", order.PaymentMethod)
	require.NotNil(t, order.Checkout)
	assert.Equal(t, entity.CheckoutOrdered, order.Checkout.Status)
	assert.True(t, decimal.NewFromInt(130000).Equal(order.Total))
	assert.Equal(t, 3, f.stock(t))

	items, err := f.cart.List(context.Background(), f.budi.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "la línea pedida sale del carrito")
}

func TestOrderPlace_InvalidaCatalogo(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 2)
	assert.Zero(t, f.catalog.invalidations, "agregar al carrito no toca el stock")

	_, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.catalog.invalidations)

	// un pedido rechazado no invalida
	_, err = f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	require.Error(t, err)
	assert.Equal(t, 1, f.catalog.invalidations)
}

func TestOrderPlace_CheckoutDeOtroUsuario(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)

	_, err := f.orders.Place(context.Background(), f.siti.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	assert.ErrorIs(t, err, domain.ErrInvalidCheckout)
	assert.Equal(t, 5, f.stock(t))
}

func TestOrderPlace_DosVecesMismaLinea(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)

	_, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	require.NoError(t, err)
	_, err = f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	assert.ErrorIs(t, err, domain.ErrInvalidCheckout)
	assert.Equal(t, 4, f.stock(t))
}

func TestOrderPlace_StockAgotadoDespuesDeAgregar(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 4)
	require.NoError(t, f.store.Products().AdjustStock(context.Background(), f.product.ID, -3))

	_, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "cod"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := f.cart.List(context.Background(), f.budi.ID)
	require.NoError(t, err)
	require.Len(t, items, 1, "la línea sigue en carrito")
	assert.Equal(t, 2, f.stock(t))
}

func TestOrderPlace_SinMetodoDePago(t *testing.T) {
	f := newFixture(t)
	line := f.add(t, f.budi, 1)
	_, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func placeOrder(t *testing.T, f *fixture, qty int) *dto.OrderResponse {
	t.Helper()
	line := f.add(t, f.budi, qty)
	order, err := f.orders.Place(context.Background(), f.budi.ID, dto.CreateOrderRequest{CheckoutID: line.ID, PaymentMethod: "transfer"})
	require.NoError(t, err)
	return order
}

func TestOrderUpdateStatus_ValorInvalido_NoCambia(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f, 1)

	for _, s := range []string{"", "pending", "REFUNDED", "paid "} {
		_, err := f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: s})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, "status %q", s)
	}

	got, err := f.orders.Get(context.Background(), f.budi.ID, false, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, got.Status)
}

func TestOrderUpdateStatus_PaidMarcaPago(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f, 1)

	got, err := f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPaid, got.Status)
	assert.Equal(t, entity.PaymentPaid, got.PaymentStatus)

	// cualquier estado puede seguir a cualquier otro
	got, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderPending})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, got.Status)
}

func TestOrderUpdateStatus_CancelarDevuelveStock(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f, 2)
	assert.Equal(t, 3, f.stock(t))

	_, err := f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCanceled})
	require.NoError(t, err)
	assert.Equal(t, 5, f.stock(t))

	// cancelar de nuevo no duplica la devolución
	_, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCanceled})
	require.NoError(t, err)
	assert.Equal(t, 5, f.stock(t))

	_, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderShipped})
	require.NoError(t, err)
	assert.Equal(t, 3, f.stock(t))
}

func TestOrderUpdateStatus_InvalidaSoloSiMueveStock(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f, 1)
	base := f.catalog.invalidations

	_, err := f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderPaid})
	require.NoError(t, err)
	assert.Equal(t, base, f.catalog.invalidations, "PAID no cambia stock")

	_, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCanceled})
	require.NoError(t, err)
	assert.Equal(t, base+1, f.catalog.invalidations)

	_, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCanceled})
	require.NoError(t, err)
	assert.Equal(t, base+1, f.catalog.invalidations, "cancelar dos veces no mueve stock")

	_, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderShipped})
	require.NoError(t, err)
	assert.Equal(t, base+2, f.catalog.invalidations)
}

func TestOrderUpdateStatus_ReactivarSinStock_NoCambia(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f, 2)
	_, err := f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCanceled})
	require.NoError(t, err)
	require.NoError(t, f.store.Products().AdjustStock(context.Background(), f.product.ID, -4))

	_, err = f.orders.UpdateStatus(context.Background(), order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderPending})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.orders.Get(context.Background(), 0, true, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCanceled, got.Status)
	assert.Equal(t, 1, f.stock(t))
}

func TestOrderUpdateStatus_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.orders.UpdateStatus(context.Background(), 9999, dto.UpdateOrderStatusRequest{Status: entity.OrderPaid})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderGet_VisibilidadYListas(t *testing.T) {
	f := newFixture(t)
	order := placeOrder(t, f, 1)

	_, err := f.orders.Get(context.Background(), f.siti.ID, false, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.orders.Get(context.Background(), f.siti.ID, true, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	mine, err := f.orders.ListMine(context.Background(), f.budi.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.orders.ListMine(context.Background(), f.siti.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := f.orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
