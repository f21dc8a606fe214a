// Package memorytest implementa los puertos de repository en memoria para tests,
// con las mismas reglas que los adaptadores de PostgreSQL (unicidad, llaves foráneas,
// stock >= 0). Solo lo importan archivos _test.go; ningún binario lo usa.
package memorytest

import (
	"context"
	"sync"

	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// Store base de datos en memoria. Run serializa transacciones y revierte si fn falla.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	d    tables
}

type tables struct {
	nextID     int64
	users      map[int64]userRow
	categories map[int64]categoryRow
	products   map[int64]productRow
	checkouts  map[int64]checkoutRow
	orders     map[int64]orderRow
	contacts   map[int64]contactRow
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: tables{
		users:      map[int64]userRow{},
		categories: map[int64]categoryRow{},
		products:   map[int64]productRow{},
		checkouts:  map[int64]checkoutRow{},
		orders:     map[int64]orderRow{},
		contacts:   map[int64]contactRow{},
	}}
}

func (s *Store) id() int64 {
	s.d.nextID++
	return s.d.nextID
}

func (t tables) clone() tables {
	c := tables{
		nextID:     t.nextID,
		users:      make(map[int64]userRow, len(t.users)),
		categories: make(map[int64]categoryRow, len(t.categories)),
		products:   make(map[int64]productRow, len(t.products)),
		checkouts:  make(map[int64]checkoutRow, len(t.checkouts)),
		orders:     make(map[int64]orderRow, len(t.orders)),
		contacts:   make(map[int64]contactRow, len(t.contacts)),
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.categories {
		c.categories[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.checkouts {
		c.checkouts[k] = v
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.contacts {
		c.contacts[k] = v
	}
	return c
}

// Run ejecuta fn como una transacción: si devuelve error, el store vuelve al estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	checkouts repository.CheckoutRepository,
	orders repository.OrderRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	if err := fn(s.Products(), s.Checkouts(), s.Orders()); err != nil {
		s.mu.Lock()
		s.d = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }
func (s *Store) Products() *ProductRepo   { return &ProductRepo{s: s} }
func (s *Store) Checkouts() *CheckoutRepo { return &CheckoutRepo{s: s} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{s: s} }
func (s *Store) Contacts() *ContactRepo   { return &ContactRepo{s: s} }
func (s *Store) Sales() *SalesRepo        { return &SalesRepo{s: s} }
