package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/productsvc/internal/errors"
	"github.com/abgdnv/productsvc/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ProductStore = (*PgStore)(nil)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*db.Product, error) {
	product, err := p.q.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.NotFound(id)
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// FindAll retrieves products ordered by ID, optionally filtered by exact name.
func (p *PgStore) FindAll(ctx context.Context, name string) ([]db.Product, error) {
	products, err := p.q.FindAll(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return products, nil
}

// Create adds a new product to the system.
func (p *PgStore) Create(ctx context.Context, params db.CreateParams) (*db.Product, error) {
	product, err := p.q.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update modifies an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, params db.UpdateParams) (*db.Product, error) {
	product, err := p.q.Update(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.NotFound(params.ID)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product by its unique identifier.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	count, err := p.q.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return count > 0, nil
}

// Ping checks the connection pool.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
