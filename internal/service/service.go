// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/productsvc/internal/store"
	"github.com/abgdnv/productsvc/internal/store/db"
	"github.com/abgdnv/productsvc/pkg/messaging"
	"github.com/abgdnv/productsvc/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns products ordered by ID, only those with the given name when it is not empty.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context, name string) ([]ProductDto, error)

	// Create adds a new product to the system.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update applies the DTO onto the product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID. Deleting a missing product is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository      store.ProductStore
	publisher       messaging.Publisher
	productsCounter metric.Int64Counter
	logger          *slog.Logger
}

// NewService creates a new instance of ProductService with the provided repository.
// Product changes are announced through publisher.
func NewService(repo store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Service {
	meter := otel.Meter("product-service")
	productsCounter, err := meter.Int64Counter("products_created", metric.WithDescription("Total number of created products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create products_created counter: %v", err))
	}
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &Service{
		repository:      repo,
		publisher:       publisher,
		productsCounter: productsCounter,
		logger:          logger.With("component", "product-service"),
	}
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context, name string) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, product.toCreateParams())
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publish(ctx, events.ProductCreatedEvent{ProductEvent: newEvent(ctx, p)})
	// increase the number of created products
	s.productsCounter.Add(ctx, 1)

	return toDto(p), nil
}

// Update modifies an existing product's details and returns the updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	current, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	updated, err := s.repository.Update(ctx, product.applyTo(current))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	s.publish(ctx, events.ProductUpdatedEvent{ProductEvent: newEvent(ctx, updated)})

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// A products.deleted event is published only when a product was removed.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	removed, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	if removed {
		s.publish(ctx, events.ProductDeletedEvent{
			ProductEvent: events.NewProductEvent(ctx, id, "", "", ""),
		})
	}
	return nil
}

// publish sends the event. Delivery failures are logged and never fail the operation.
func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}

func newEvent(ctx context.Context, p *db.Product) events.ProductEvent {
	return events.NewProductEvent(ctx, p.ID, p.Name, p.Sku, p.Price.StringFixed(2))
}
