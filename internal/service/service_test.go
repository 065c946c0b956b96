package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	perrors "github.com/abgdnv/productsvc/internal/errors"
	"github.com/abgdnv/productsvc/internal/store/db"
	"github.com/abgdnv/productsvc/pkg/messaging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []db.Product
	product  db.Product
	removed  bool
	error    error

	updateError error
	updated     db.UpdateParams
	created     db.CreateParams
}

// Simulate finding a product by ID
func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*db.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	p := m.product
	return &p, nil
}

// Simulate finding all products
func (m *mockProductStore) FindAll(_ context.Context, _ string) ([]db.Product, error) {
	return m.products, m.error
}

// Simulate creating a product
func (m *mockProductStore) Create(_ context.Context, params db.CreateParams) (*db.Product, error) {
	m.created = params
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate updating a product
func (m *mockProductStore) Update(_ context.Context, params db.UpdateParams) (*db.Product, error) {
	m.updated = params
	if m.updateError != nil {
		return nil, m.updateError
	}
	return &db.Product{
		ID:          params.ID,
		Name:        params.Name,
		Sku:         params.Sku,
		Description: params.Description,
		Price:       params.Price,
		ImageUrl:    params.ImageUrl,
	}, nil
}

// Simulate deleting a product by ID
func (m *mockProductStore) DeleteByID(_ context.Context, _ int64) (bool, error) {
	return m.removed, m.error
}

func (m *mockProductStore) Ping(_ context.Context) error {
	return m.error
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event messaging.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	subjects := make([]string, 0, len(p.events))
	for _, e := range p.events {
		subjects = append(subjects, e.Subject())
	}
	return subjects
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func Test_ProductService_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: db.Product{ID: 7, Name: "Toy", Price: decimal.RequireFromString("3.5")},
			},
			expected: &ProductDto{ID: 7, Name: "Toy", Price: "3.50"},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: perrors.ErrProductNotFound},
			expectError: perrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, nil, discardLogger)
			// when
			found, err := service.FindByID(context.Background(), 7)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name         string
		mockStore    *mockProductStore
		expectedList []ProductDto
		expectError  error
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []db.Product{{ID: 1, Name: "Toy", Price: decimal.NewFromInt(2)}},
			},
			expectedList: []ProductDto{{ID: 1, Name: "Toy", Price: "2.00"}},
		},
		{
			name:         "Success - no products",
			mockStore:    &mockProductStore{products: []db.Product{}},
			expectedList: []ProductDto{},
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore, nil, discardLogger)
			// when
			found, err := service.FindAll(context.Background(), "")
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedList, found)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name           string
		mockStore      *mockProductStore
		publisherError error
		product        ProductCreateDto
		expected       *ProductDto
		expectedPrice  string
		expectError    error
		expectEvents   []string
	}{
		{
			name: "Success - product created",
			mockStore: &mockProductStore{
				product: db.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")},
			},
			product:       ProductCreateDto{Name: "Widget", Price: price("9.99")},
			expected:      &ProductDto{ID: 1, Name: "Widget", Price: "9.99"},
			expectedPrice: "9.99",
			expectEvents:  []string{messaging.ProductsCreatedSubject},
		},
		{
			name: "Success - price rounded to cents",
			mockStore: &mockProductStore{
				product: db.Product{ID: 2, Name: "Widget", Price: decimal.RequireFromString("1.01")},
			},
			product:       ProductCreateDto{Name: "Widget", Price: price("1.005")},
			expected:      &ProductDto{ID: 2, Name: "Widget", Price: "1.01"},
			expectedPrice: "1.01",
			expectEvents:  []string{messaging.ProductsCreatedSubject},
		},
		{
			name: "Success - publish failure does not fail create",
			mockStore: &mockProductStore{
				product: db.Product{ID: 3, Name: "Widget", Price: decimal.Zero},
			},
			publisherError: errors.New("broker down"),
			product:        ProductCreateDto{Name: "Widget", Price: price("0")},
			expected:       &ProductDto{ID: 3, Name: "Widget", Price: "0.00"},
			expectedPrice:  "0.00",
			expectEvents:   []string{messaging.ProductsCreatedSubject},
		},
		{
			name:         "Error - store error",
			mockStore:    &mockProductStore{error: ErrStoreError},
			product:      ProductCreateDto{Name: "Toy", Price: price("1")},
			expectError:  ErrStoreError,
			expectEvents: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &recordingPublisher{err: tc.publisherError}
			var logs bytes.Buffer
			service := NewService(tc.mockStore, publisher, slog.New(slog.NewJSONHandler(&logs, nil)))
			// when
			created, err := service.Create(context.Background(), tc.product)
			// then
			assert.Equal(t, tc.expectEvents, publisher.subjects())
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
			assert.Equal(t, tc.expectedPrice, tc.mockStore.created.Price.StringFixed(2))
			if tc.publisherError != nil {
				assert.Contains(t, logs.String(), `"msg":"Failed to publish product event"`)
				assert.Contains(t, logs.String(), `"component":"product-service"`)
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	ErrStoreError := errors.New("store error")
	existing := db.Product{
		ID:          5,
		Name:        "Widget",
		Sku:         "W-1",
		Description: "A widget",
		Price:       decimal.RequireFromString("9.99"),
		ImageUrl:    "https://example.com/w.png",
	}
	testCases := []struct {
		name         string
		mockStore    *mockProductStore
		product      ProductUpdateDto
		expected     *ProductDto
		expectError  error
		expectEvents []string
	}{
		{
			name:      "Success - omitted optional fields keep prior values",
			mockStore: &mockProductStore{product: existing},
			product:   ProductUpdateDto{Name: "Widget Pro", Price: price("19.99")},
			expected: &ProductDto{
				ID: 5, Name: "Widget Pro", Sku: "W-1", Description: "A widget",
				Price: "19.99", ImageURL: "https://example.com/w.png",
			},
			expectEvents: []string{messaging.ProductsUpdatedSubject},
		},
		{
			name:      "Success - supplied optional fields are replaced",
			mockStore: &mockProductStore{product: existing},
			product: ProductUpdateDto{
				Name: "Widget", Price: price("9.99"),
				Sku: strPtr(""), Description: strPtr("new"), ImageURL: strPtr(""),
			},
			expected:     &ProductDto{ID: 5, Name: "Widget", Description: "new", Price: "9.99"},
			expectEvents: []string{messaging.ProductsUpdatedSubject},
		},
		{
			name:         "Error - product not found",
			mockStore:    &mockProductStore{error: perrors.ErrProductNotFound},
			product:      ProductUpdateDto{Name: "Widget", Price: price("1")},
			expectError:  perrors.ErrProductNotFound,
			expectEvents: []string{},
		},
		{
			name:         "Error - product vanished before update",
			mockStore:    &mockProductStore{product: existing, updateError: perrors.ErrProductNotFound},
			product:      ProductUpdateDto{Name: "Widget", Price: price("1")},
			expectError:  perrors.ErrProductNotFound,
			expectEvents: []string{},
		},
		{
			name:         "Error - store error",
			mockStore:    &mockProductStore{product: existing, updateError: ErrStoreError},
			product:      ProductUpdateDto{Name: "Widget", Price: price("1")},
			expectError:  ErrStoreError,
			expectEvents: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &recordingPublisher{}
			service := NewService(tc.mockStore, publisher, discardLogger)
			// when
			updated, err := service.Update(context.Background(), 5, tc.product)
			// then
			assert.Equal(t, tc.expectEvents, publisher.subjects())
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
			assert.Equal(t, int64(5), tc.mockStore.updated.ID)
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name         string
		mockStore    *mockProductStore
		expectError  error
		expectEvents []string
	}{
		{
			name:         "Success - product deleted",
			mockStore:    &mockProductStore{removed: true},
			expectEvents: []string{messaging.ProductsDeletedSubject},
		},
		{
			name:         "Success - missing product is not an error",
			mockStore:    &mockProductStore{removed: false},
			expectEvents: []string{},
		},
		{
			name:         "Error - store error",
			mockStore:    &mockProductStore{error: ErrStoreError},
			expectError:  ErrStoreError,
			expectEvents: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			publisher := &recordingPublisher{}
			service := NewService(tc.mockStore, publisher, discardLogger)
			// when
			err := service.DeleteByID(context.Background(), 1)
			// then
			assert.Equal(t, tc.expectEvents, publisher.subjects())
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}
