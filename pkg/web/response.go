package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Response is the successful outcome of a HandlerFunc.
type Response struct {
	Status  int
	Body    any
	Headers map[string]string
}

// Error is the failed outcome of a HandlerFunc. Details, when set, are
// rendered as validation_errors.
type Error struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// NewError builds an Error with a formatted message.
func NewError(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func OK(body any) *Response {
	return &Response{Status: http.StatusOK, Body: body}
}

func Created(body any, location string) *Response {
	return &Response{
		Status:  http.StatusCreated,
		Body:    body,
		Headers: map[string]string{HeaderLocation: location},
	}
}

func NoContent() *Response {
	return &Response{Status: http.StatusNoContent}
}

// HandlerFunc takes a request and returns either a Response or an error.
type HandlerFunc func(r *http.Request) (*Response, error)

// Handle adapts a HandlerFunc to net/http. An *Error is written as is,
// any other error becomes a 500.
func Handle(logger *slog.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		if err != nil {
			var httpErr *Error
			if !errors.As(err, &httpErr) {
				logger.ErrorContext(r.Context(), "Unhandled handler error", "error", err)
				httpErr = &Error{Status: http.StatusInternalServerError, Message: "An unexpected error occurred"}
			}
			respondError(w, logger, httpErr)
			return
		}
		if resp == nil {
			resp = NoContent()
		}
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		RespondJSON(w, logger, resp.Status, resp.Body)
	}
}
