package rest

import (
	"net/http"

	"github.com/abgdnv/productsvc/pkg/web"
)

// Endpoint describes one route in the index document.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// IndexDto is the discovery document served at the root URL.
type IndexDto struct {
	Name        string     `json:"name"`
	Version     string     `json:"version"`
	Description string     `json:"description"`
	Endpoints   []Endpoint `json:"endpoints"`
	Status      string     `json:"status"`
}

var index = IndexDto{
	Name:        "Products REST API Service",
	Version:     "0.1.0",
	Description: "This is the products service API. Below is how you use it.",
	Endpoints: []Endpoint{
		{Method: http.MethodPost, Path: "/products", Description: "Create a new product"},
		{Method: http.MethodGet, Path: "/products/{id}", Description: "Retrieve a product by id"},
		{Method: http.MethodGet, Path: "/products", Description: "List all products, optionally filtered by ?name="},
		{Method: http.MethodPut, Path: "/products/{id}", Description: "Update an existing product"},
		{Method: http.MethodDelete, Path: "/products/{id}", Description: "Delete a product by id"},
	},
	Status: "online",
}

// Index returns the service description and its endpoints.
func (h *Handler) Index(r *http.Request) (*web.Response, error) {
	h.logger.DebugContext(r.Context(), "Request for Root URL")
	return web.OK(index), nil
}
