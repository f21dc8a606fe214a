package memorytest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// Las filas se guardan por valor; las lecturas devuelven copias.
type (
	userRow     = entity.User
	categoryRow = entity.Category
	productRow  = entity.Product
	checkoutRow = entity.Checkout
	orderRow    = entity.Order
	contactRow  = entity.Contact
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CheckoutRepository = (*CheckoutRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.ContactRepository  = (*ContactRepo)(nil)
	_ repository.SalesRepository    = (*SalesRepo)(nil)
)

// ── Users ─────────────────────────────────────────────────────────────────────

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.d.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	now := time.Now()
	u.ID = r.s.id()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.d.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.d.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.User
	for _, u := range r.s.d.users {
		if u.Role == role {
			u := u
			list = append(list, &u)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.s.d.users {
		if id != u.ID && other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.UpdatedAt = time.Now()
	r.s.d.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.d.users, id)
	for oid, o := range r.s.d.orders {
		if o.UserID == id {
			delete(r.s.d.orders, oid)
		}
	}
	for cid, c := range r.s.d.checkouts {
		if c.UserID == id {
			delete(r.s.d.checkouts, cid)
		}
	}
	return nil
}

// ── Categories ────────────────────────────────────────────────────────────────

type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.d.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *entity.Category
	for _, c := range r.s.d.categories {
		if c.Name == name && (found == nil || c.ID < found.ID) {
			c := c
			found = &c
		}
	}
	return found, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Category
	for _, c := range r.s.d.categories {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.d.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = c.Name
	r.s.d.categories[c.ID] = existing
	*c = existing
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.d.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.d.categories, id)
	return nil
}

// ── Products ──────────────────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

func (r *ProductRepo) withCategory(p entity.Product) *entity.Product {
	if c, ok := r.s.d.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return &p
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.categories[p.CategoryID]; !ok {
		return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
	}
	now := time.Now()
	p.ID = r.s.id()
	p.CreatedAt, p.UpdatedAt = now, now
	p.CategoryName = ""
	r.s.d.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[id]
	if !ok {
		return nil, nil
	}
	return r.withCategory(p), nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.d.products {
		if filter.CategoryID > 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		list = append(list, r.withCategory(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.d.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.d.categories[p.CategoryID]; !ok {
		return fmt.Errorf("%w: la categoría no existe", domain.ErrInvalidInput)
	}
	if p.Stock < 0 {
		return domain.ErrInsufficientStock
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	row := *p
	row.CategoryName = ""
	r.s.d.products[p.ID] = row
	return nil
}

func (r *ProductRepo) AdjustStock(_ context.Context, id int64, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.d.products[id]
	if !ok || p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	r.s.d.products[id] = p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.d.checkouts {
		if c.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.d.products, id)
	return nil
}

// ── Checkouts ─────────────────────────────────────────────────────────────────

type CheckoutRepo struct{ s *Store }

func (r *CheckoutRepo) withProduct(c entity.Checkout) *entity.Checkout {
	if p, ok := r.s.d.products[c.ProductID]; ok {
		c.Product = &p
	}
	return &c
}

func (r *CheckoutRepo) Create(_ context.Context, c *entity.Checkout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.users[c.UserID]; !ok {
		return fmt.Errorf("%w: usuario inexistente", domain.ErrInvalidInput)
	}
	if _, ok := r.s.d.products[c.ProductID]; !ok {
		return fmt.Errorf("%w: producto inexistente", domain.ErrInvalidInput)
	}
	if c.Status == entity.CheckoutInCart {
		for _, other := range r.s.d.checkouts {
			if other.UserID == c.UserID && other.ProductID == c.ProductID && other.InCart() {
				return domain.ErrConflict
			}
		}
	}
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	row := *c
	row.Product = nil
	r.s.d.checkouts[c.ID] = row
	return nil
}

func (r *CheckoutRepo) GetByID(_ context.Context, id int64) (*entity.Checkout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.checkouts[id]
	if !ok {
		return nil, nil
	}
	return r.withProduct(c), nil
}

func (r *CheckoutRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Checkout, error) {
	return r.GetByID(ctx, id)
}

func (r *CheckoutRepo) FindInCart(_ context.Context, userID, productID int64) (*entity.Checkout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.d.checkouts {
		if c.UserID == userID && c.ProductID == productID && c.InCart() {
			return r.withProduct(c), nil
		}
	}
	return nil, nil
}

func (r *CheckoutRepo) ListInCart(_ context.Context, userID int64) ([]*entity.Checkout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Checkout
	for _, c := range r.s.d.checkouts {
		if c.UserID == userID && c.InCart() {
			list = append(list, r.withProduct(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *CheckoutRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.checkouts[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Quantity = quantity
	r.s.d.checkouts[id] = c
	return nil
}

func (r *CheckoutRepo) MarkOrdered(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.checkouts[id]
	if !ok || !c.InCart() {
		return domain.ErrInvalidCheckout
	}
	c.Status = entity.CheckoutOrdered
	r.s.d.checkouts[id] = c
	return nil
}

func (r *CheckoutRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.d.checkouts[id]
	if !ok || !c.InCart() {
		return domain.ErrInvalidCheckout
	}
	delete(r.s.d.checkouts, id)
	return nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

type OrderRepo struct{ s *Store }

func (r *OrderRepo) withCheckout(o entity.Order) *entity.Order {
	if c, ok := r.s.d.checkouts[o.CheckoutID]; ok {
		if p, ok := r.s.d.products[c.ProductID]; ok {
			c.Product = &p
		}
		o.Checkout = &c
	}
	return &o
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.d.checkouts[o.CheckoutID]; !ok {
		return domain.ErrInvalidCheckout
	}
	for _, other := range r.s.d.orders {
		if other.CheckoutID == o.CheckoutID {
			return domain.ErrInvalidCheckout
		}
	}
	now := time.Now()
	o.ID = r.s.id()
	o.CreatedAt, o.UpdatedAt = now, now
	row := *o
	row.Checkout = nil
	r.s.d.orders[o.ID] = row
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.d.orders[id]
	if !ok {
		return nil, nil
	}
	return r.withCheckout(o), nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) ListByUser(_ context.Context, userID int64) ([]*entity.Order, error) {
	return r.list(func(o entity.Order) bool { return o.UserID == userID }), nil
}

func (r *OrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	return r.list(func(entity.Order) bool { return true }), nil
}

func (r *OrderRepo) list(keep func(entity.Order) bool) []*entity.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Order
	for _, o := range r.s.d.orders {
		if keep(o) {
			list = append(list, r.withCheckout(o))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.d.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Status = o.Status
	existing.PaymentStatus = o.PaymentStatus
	existing.UpdatedAt = time.Now()
	r.s.d.orders[o.ID] = existing
	o.UpdatedAt = existing.UpdatedAt
	return nil
}

// ── Contacts ──────────────────────────────────────────────────────────────────

type ContactRepo struct{ s *Store }

func (r *ContactRepo) Create(_ context.Context, c *entity.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.d.contacts[c.ID] = *c
	return nil
}

func (r *ContactRepo) ListRecent(_ context.Context) ([]*entity.Contact, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Contact
	for _, c := range r.s.d.contacts {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// ── Sales ─────────────────────────────────────────────────────────────────────

type SalesRepo struct{ s *Store }

func (r *SalesRepo) ListSales(_ context.Context, f entity.SalesFilter) ([]entity.SaleLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.SaleLine
	for _, o := range r.s.d.orders {
		if o.Status == entity.OrderCanceled {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !o.CreatedAt.Before(*f.To) {
			continue
		}
		c := r.s.d.checkouts[o.CheckoutID]
		p := r.s.d.products[c.ProductID]
		if f.CategoryID > 0 && p.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, entity.SaleLine{
			OrderID:      o.ID,
			OrderedAt:    o.CreatedAt,
			Status:       o.Status,
			ProductName:  p.Name,
			CategoryID:   p.CategoryID,
			CategoryName: r.s.d.categories[p.CategoryID].Name,
			Quantity:     c.Quantity,
			UnitPrice:    p.Price,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}
