// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/abgdnv/productsvc/internal/store/db"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Product, error)

	// FindAll returns products ordered by ID, restricted to the given name when it is not empty.
	// Returns an empty slice if no products match.
	FindAll(ctx context.Context, name string) ([]db.Product, error)

	// Create adds a new product and assigns its ID.
	Create(ctx context.Context, params db.CreateParams) (*db.Product, error)

	// Update rewrites every mutable field of the product with params.ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, params db.UpdateParams) (*db.Product, error)

	// DeleteByID removes a product by its ID and reports whether a product was removed.
	// A missing product is not an error.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
}
