package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/abgdnv/productsvc/internal/store/db"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProductDto represents the data transfer object for a product.
// Price is rendered with two decimal places.
type ProductDto struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Sku         string `json:"sku"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Price accepts both a JSON number and a numeric string.
type ProductCreateDto struct {
	Name        string           `json:"name"        validate:"required,nonul,max=100"`
	Sku         string           `json:"sku"         validate:"nonul,max=50"`
	Description string           `json:"description" validate:"nonul,max=250"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=999999999999.99"`
	ImageURL    string           `json:"image_url"   validate:"omitempty,url"`
}

// ProductUpdateDto represents the data transfer object for updating an existing product.
// Name and price are required; omitted optional fields keep their current values.
// Any id in the body is ignored. An empty image_url clears the image.
type ProductUpdateDto struct {
	Name        string           `json:"name"        validate:"required,nonul,max=100"`
	Sku         *string          `json:"sku"         validate:"omitempty,nonul,max=50"`
	Description *string          `json:"description" validate:"omitempty,nonul,max=250"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=999999999999.99"`
	ImageURL    *string          `json:"image_url"   validate:"omitempty,url|len=0"`
}

// NewValidator returns a validator that reports fields by their JSON names and
// compares decimal prices numerically. Prices must fit NUMERIC(14,2) and text
// fields must not contain NUL, which Postgres rejects.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	}); err != nil {
		panic(fmt.Sprintf("failed to register nonul validation: %v", err))
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// toCreateParams converts the DTO into store parameters. Price is rounded to cents.
func (d ProductCreateDto) toCreateParams() db.CreateParams {
	params := db.CreateParams{
		Name:        d.Name,
		Sku:         d.Sku,
		Description: d.Description,
		ImageUrl:    d.ImageURL,
	}
	if d.Price != nil {
		params.Price = d.Price.Round(2)
	}
	return params
}

// applyTo overwrites the mutable fields of p. Optional fields that were not supplied are left untouched.
func (d ProductUpdateDto) applyTo(p *db.Product) db.UpdateParams {
	p.Name = d.Name
	if d.Price != nil {
		p.Price = d.Price.Round(2)
	}
	if d.Sku != nil {
		p.Sku = *d.Sku
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.ImageURL != nil {
		p.ImageUrl = *d.ImageURL
	}
	return db.UpdateParams{
		ID:          p.ID,
		Name:        p.Name,
		Sku:         p.Sku,
		Description: p.Description,
		Price:       p.Price,
		ImageUrl:    p.ImageUrl,
	}
}

// toDto converts a db.Product to a ProductDto.
func toDto(product *db.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Sku:         product.Sku,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		ImageURL:    product.ImageUrl,
	}
}
