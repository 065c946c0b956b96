package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// price travels as text in both directions so no numeric codec is needed.
const productColumns = `id, name, sku, description, price::text, image_url, created_at, updated_at`

const findByID = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`

func (q *Queries) FindByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(ctx, findByID, id)
	return scanProduct(row)
}

const findAll = `
SELECT ` + productColumns + `
FROM products
WHERE ($1::text = '' OR name = $1::text)
ORDER BY id
`

// FindAll returns every product, or only those named name when it is not empty.
func (q *Queries) FindAll(ctx context.Context, name string) ([]Product, error) {
	rows, err := q.db.Query(ctx, findAll, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const create = `
INSERT INTO products (name, sku, description, price, image_url)
VALUES ($1, $2, $3, $4::numeric, $5)
RETURNING ` + productColumns + `
`

type CreateParams struct {
	Name        string
	Sku         string
	Description string
	Price       decimal.Decimal
	ImageUrl    string
}

func (q *Queries) Create(ctx context.Context, arg CreateParams) (Product, error) {
	row := q.db.QueryRow(ctx, create,
		arg.Name,
		arg.Sku,
		arg.Description,
		arg.Price.String(),
		arg.ImageUrl,
	)
	return scanProduct(row)
}

const update = `
UPDATE products
SET name        = $2,
    sku         = $3,
    description = $4,
    price       = $5::numeric,
    image_url   = $6,
    updated_at  = now()
WHERE id = $1
RETURNING ` + productColumns + `
`

type UpdateParams struct {
	ID          int64
	Name        string
	Sku         string
	Description string
	Price       decimal.Decimal
	ImageUrl    string
}

func (q *Queries) Update(ctx context.Context, arg UpdateParams) (Product, error) {
	row := q.db.QueryRow(ctx, update,
		arg.ID,
		arg.Name,
		arg.Sku,
		arg.Description,
		arg.Price.String(),
		arg.ImageUrl,
	)
	return scanProduct(row)
}

const deleteByID = `
DELETE FROM products
WHERE id = $1
`

// Delete returns the number of removed rows.
func (q *Queries) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var i Product
	var price string
	if err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Sku,
		&i.Description,
		&price,
		&i.ImageUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
	); err != nil {
		return i, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return i, fmt.Errorf("invalid price %q for product %d: %w", price, i.ID, err)
	}
	i.Price = parsed
	return i, nil
}
