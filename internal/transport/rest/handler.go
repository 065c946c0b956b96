// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/productsvc/internal/errors"
	"github.com/abgdnv/productsvc/internal/service"
	"github.com/abgdnv/productsvc/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(svc service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  svc,
		validate: service.NewValidator(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", web.Handle(h.logger, h.Index))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", web.Handle(h.logger, h.FindAll))
		r.Post("/", web.Handle(h.logger, h.Create))

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", web.Handle(h.logger, h.FindByID))
			r.Put("/", web.Handle(h.logger, h.Update))
			r.Delete("/", web.Handle(h.logger, h.DeleteByID))
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// Create handles the creation of a new product.
func (h *Handler) Create(r *http.Request) (*web.Response, error) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "Request to Create a Product...")
	if err := web.CheckContentType(r, h.logger, web.ContentTypeJSON); err != nil {
		return nil, err
	}

	var productCreateDto service.ProductCreateDto
	if err := h.decode(r, &productCreateDto); err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "Processing", "product", productCreateDto.Name)

	created, err := h.service.Create(ctx, productCreateDto)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error creating product", "error", err)
		return nil, web.NewError(http.StatusInternalServerError, "Failed to create product")
	}
	h.logger.InfoContext(ctx, fmt.Sprintf("Product with new id [%d] saved!", created.ID))

	return web.Created(created, productLocation(created.ID)), nil
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(r *http.Request) (*web.Response, error) {
	ctx := r.Context()
	id, err := web.ParseInt64ID(r, productNotFound)
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, fmt.Sprintf("Request to Retrieve a product with id [%d]", id))

	found, err := h.service.FindByID(ctx, id)
	if err != nil {
		return nil, h.lookupError(r, id, err)
	}
	h.logger.InfoContext(ctx, "Returning product", "name", found.Name)

	return web.OK(found), nil
}

// Update replaces the details of an existing product.
// A missing product is reported before the request body is looked at.
func (h *Handler) Update(r *http.Request) (*web.Response, error) {
	ctx := r.Context()
	id, err := web.ParseInt64ID(r, productNotFound)
	if err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, fmt.Sprintf("Request to Update a product with id [%d]", id))

	if _, err := h.service.FindByID(ctx, id); err != nil {
		return nil, h.lookupError(r, id, err)
	}
	if err := web.CheckContentType(r, h.logger, web.ContentTypeJSON); err != nil {
		return nil, err
	}

	var productUpdateDto service.ProductUpdateDto
	if err := h.decode(r, &productUpdateDto); err != nil {
		return nil, err
	}
	h.logger.InfoContext(ctx, "Processing", "product", productUpdateDto.Name)

	updated, err := h.service.Update(ctx, id, productUpdateDto)
	if err != nil {
		return nil, h.lookupError(r, id, err)
	}
	h.logger.InfoContext(ctx, fmt.Sprintf("Product with id [%d] updated!", updated.ID))

	return web.OK(updated), nil
}

// FindAll lists products, filtered by the optional name query parameter.
func (h *Handler) FindAll(r *http.Request) (*web.Response, error) {
	ctx := r.Context()
	name := r.URL.Query().Get("name")
	h.logger.InfoContext(ctx, "Request for product list", "name", name)

	list, err := h.service.FindAll(ctx, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error retrieving product list", "error", err)
		return nil, web.NewError(http.StatusInternalServerError, "Failed to fetch products")
	}
	h.logger.InfoContext(ctx, "Returning products", "count", len(list))

	return web.OK(list), nil
}

// DeleteByID deletes a product by its ID. Deleting a missing product also answers 204.
func (h *Handler) DeleteByID(r *http.Request) (*web.Response, error) {
	ctx := r.Context()
	id, err := web.ParseInt64ID(r, productNotFound)
	if err != nil {
		// nothing can be stored under an out-of-range id
		return web.NoContent(), nil
	}
	h.logger.InfoContext(ctx, fmt.Sprintf("Request to Delete a product with id [%d]", id))

	if err := h.service.DeleteByID(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "Error deleting product", "ID", id, "error", err)
		return nil, web.NewError(http.StatusInternalServerError, "Failed to delete product with id '%d'", id)
	}
	h.logger.InfoContext(ctx, fmt.Sprintf("Product with id [%d] delete complete.", id))

	return web.NoContent(), nil
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decode reads the JSON body into dst and validates it.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := web.DecodeJSON(r, dst); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		return err
	}
	if err := web.ValidateStruct(h.validate, dst); err != nil {
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "error", err)
		return err
	}
	return nil
}

// lookupError maps a service error for the product id to a response error.
func (h *Handler) lookupError(r *http.Request, id int64, err error) error {
	if errors.Is(err, producterrors.ErrProductNotFound) {
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		return productNotFound(fmt.Sprint(id))
	}
	h.logger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
	return web.NewError(http.StatusInternalServerError, "Failed to retrieve product with id '%d'", id)
}

func productNotFound(id string) error {
	return web.NewError(http.StatusNotFound, "Product with id '%s' was not found.", id)
}

func productLocation(id int64) string {
	return fmt.Sprintf("/products/%d", id)
}
