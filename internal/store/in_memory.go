package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	perrors "github.com/abgdnv/productsvc/internal/errors"
	"github.com/abgdnv/productsvc/internal/store/db"
)

var _ ProductStore = (*InMemoryStore)(nil)

// InMemoryStore implements ProductStore using an in-memory map.
type InMemoryStore struct {
	mu       sync.RWMutex
	products map[int64]db.Product
	nextID   int64
}

// NewInMemoryStore creates an empty store whose first assigned ID is 1.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		products: make(map[int64]db.Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*db.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.NotFound(id)
	}
	return &p, nil
}

// FindAll retrieves products ordered by ID, optionally filtered by exact name.
func (s *InMemoryStore) FindAll(_ context.Context, name string) ([]db.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]db.Product, 0, len(s.products))
	for _, p := range s.products {
		if name != "" && p.Name != name {
			continue
		}
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b db.Product) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list, nil
}

// Create creates a new product and returns it.
func (s *InMemoryStore) Create(_ context.Context, params db.CreateParams) (*db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	product := db.Product{
		ID:          s.nextID,
		Name:        params.Name,
		Sku:         params.Sku,
		Description: params.Description,
		Price:       params.Price,
		ImageUrl:    params.ImageUrl,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.products[product.ID] = product

	return &product, nil
}

// Update replaces the mutable fields of an existing product.
func (s *InMemoryStore) Update(_ context.Context, params db.UpdateParams) (*db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[params.ID]
	if !ok {
		return nil, perrors.NotFound(params.ID)
	}
	product.Name = params.Name
	product.Sku = params.Sku
	product.Description = params.Description
	product.Price = params.Price
	product.ImageUrl = params.ImageUrl
	product.UpdatedAt = time.Now().UTC()
	s.products[product.ID] = product

	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *InMemoryStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

// Ping always succeeds.
func (s *InMemoryStore) Ping(context.Context) error {
	return nil
}
