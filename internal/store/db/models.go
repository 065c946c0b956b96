package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Name        string
	Sku         string
	Description string
	Price       decimal.Decimal
	ImageUrl    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
