package service

import (
	"encoding/json"
	"testing"

	"github.com/abgdnv/productsvc/internal/store/db"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProductDto_RoundTrip(t *testing.T) {
	products := []db.Product{
		{ID: 1, Name: "Widget", Sku: "W-1", Description: "A widget", Price: decimal.RequireFromString("9.99"), ImageUrl: "https://example.com/w.png"},
		{ID: 2, Name: "Free sample", Price: decimal.Zero},
		{ID: 3, Name: "Gadget", Sku: "G", Price: decimal.RequireFromString("1234.5")},
	}
	v := NewValidator()

	for _, p := range products {
		t.Run(p.Name, func(t *testing.T) {
			// given
			body, err := json.Marshal(toDto(&p))
			require.NoError(t, err)
			// when
			var input ProductCreateDto
			require.NoError(t, json.Unmarshal(body, &input))
			require.NoError(t, v.Struct(input))
			params := input.toCreateParams()
			// then
			assert.Equal(t, p.Name, params.Name)
			assert.Equal(t, p.Sku, params.Sku)
			assert.Equal(t, p.Description, params.Description)
			assert.Equal(t, p.ImageUrl, params.ImageUrl)
			assert.True(t, p.Price.Equal(params.Price), "price %s != %s", p.Price, params.Price)
		})
	}
}

func Test_ProductDto_PriceFormat(t *testing.T) {
	// given
	p := db.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("5")}
	// when
	body, err := json.Marshal(toDto(&p))
	// then
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Widget","sku":"","description":"","price":"5.00","image_url":""}`, string(body))
}

func Test_ProductCreateDto_Validation(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedField string
		expectedTag   string
	}{
		{name: "valid with numeric price", body: `{"name":"Widget","price":9.99}`},
		{name: "valid with string price", body: `{"name":"Widget","price":"9.99"}`},
		{name: "valid zero price", body: `{"name":"Widget","price":0}`},
		{name: "valid image url", body: `{"name":"Widget","price":1,"image_url":"https://example.com/a.png"}`},
		{name: "missing name", body: `{"price":1}`, expectedField: "name", expectedTag: "required"},
		{name: "empty name", body: `{"name":"","price":1}`, expectedField: "name", expectedTag: "required"},
		{name: "missing price", body: `{"name":"Widget"}`, expectedField: "price", expectedTag: "required"},
		{name: "negative price", body: `{"name":"Widget","price":-0.01}`, expectedField: "price", expectedTag: "gte"},
		{name: "bad image url", body: `{"name":"Widget","price":1,"image_url":"not a url"}`, expectedField: "image_url", expectedTag: "url"},
		{name: "sku too long", body: `{"name":"Widget","price":1,"sku":"` + longString(51) + `"}`, expectedField: "sku", expectedTag: "max"},
		{name: "largest price", body: `{"name":"Widget","price":"999999999999.99"}`},
		{name: "price above column range", body: `{"name":"Big","price":"1e20"}`, expectedField: "price", expectedTag: "lte"},
		{name: "price rounding past column range", body: `{"name":"Big","price":"999999999999.999"}`, expectedField: "price", expectedTag: "lte"},
		{name: "NUL in name", body: `{"name":"Nul\u0000","price":1}`, expectedField: "name", expectedTag: "nonul"},
		{name: "NUL in sku", body: `{"name":"Widget","price":1,"sku":"\u0000"}`, expectedField: "sku", expectedTag: "nonul"},
		{name: "NUL in description", body: `{"name":"Widget","price":1,"description":"a\u0000b"}`, expectedField: "description", expectedTag: "nonul"},
	}
	v := NewValidator()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var input ProductCreateDto
			require.NoError(t, json.Unmarshal([]byte(tc.body), &input))
			// when
			err := v.Struct(input)
			// then
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			require.Len(t, validationErrors, 1)
			assert.Equal(t, tc.expectedField, validationErrors[0].Field())
			assert.Equal(t, tc.expectedTag, validationErrors[0].Tag())
		})
	}
}

func Test_ProductUpdateDto_Validation(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedField string
	}{
		{name: "required fields only", body: `{"name":"Widget","price":"1.00"}`},
		{name: "id in body is ignored", body: `{"id":99,"name":"Widget","price":1}`},
		{name: "empty optional strings are allowed", body: `{"name":"Widget","price":1,"sku":"","image_url":""}`},
		{name: "missing price", body: `{"name":"Widget"}`, expectedField: "price"},
		{name: "missing name", body: `{"price":1}`, expectedField: "name"},
		{name: "bad image url", body: `{"name":"Widget","price":1,"image_url":"not a url"}`, expectedField: "image_url"},
		{name: "description too long", body: `{"name":"Widget","price":1,"description":"` + longString(251) + `"}`, expectedField: "description"},
		{name: "price above column range", body: `{"name":"Widget","price":1e20}`, expectedField: "price"},
		{name: "NUL in name", body: `{"name":"\u0000","price":1}`, expectedField: "name"},
		{name: "NUL in sku", body: `{"name":"Widget","price":1,"sku":"W\u0000"}`, expectedField: "sku"},
		{name: "NUL in description", body: `{"name":"Widget","price":1,"description":"\u0000"}`, expectedField: "description"},
	}
	v := NewValidator()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var input ProductUpdateDto
			require.NoError(t, json.Unmarshal([]byte(tc.body), &input))
			// when
			err := v.Struct(input)
			// then
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			assert.Equal(t, tc.expectedField, validationErrors[0].Field())
		})
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
