package web

import (
	"log/slog"
	"net/http"
)

// CheckContentType requires the Content-Type header to equal expected exactly.
// Parameters such as charset are not stripped, so "application/json; charset=utf-8"
// does not match "application/json".
func CheckContentType(r *http.Request, logger *slog.Logger, expected string) error {
	contentType := r.Header.Get(HeaderContentType)
	if contentType == "" {
		logger.ErrorContext(r.Context(), "No Content-Type specified.")
		return NewError(http.StatusUnsupportedMediaType, "Content-Type must be %s", expected)
	}
	if contentType != expected {
		logger.ErrorContext(r.Context(), "Invalid Content-Type", "content_type", contentType)
		return NewError(http.StatusUnsupportedMediaType, "Content-Type must be %s", expected)
	}
	return nil
}
