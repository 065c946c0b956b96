package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	HeaderContentType = "Content-Type"
	HeaderLocation    = "Location"
	ContentTypeJSON   = "application/json"
)

// ErrorBody is the JSON document written for every error response.
type ErrorBody struct {
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
}

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondError(w, logger, &Error{Status: status, Message: message})
}

func respondError(w http.ResponseWriter, logger *slog.Logger, e *Error) {
	RespondJSON(w, logger, e.Status, ErrorBody{
		Status:           e.Status,
		Error:            http.StatusText(e.Status),
		Message:          e.Message,
		ValidationErrors: e.Details,
	})
}

// ParseInt64ID reads the "id" path value. Values that do not fit an int64
// are reported through notFound, since no record can carry such an id.
func ParseInt64ID(r *http.Request, notFound func(raw string) error) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, notFound(raw)
	}
	return id, nil
}

// NotFoundHandler answers unmatched routes with a JSON 404.
func NotFoundHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		RespondError(w, logger, http.StatusNotFound, "The requested URL was not found on the server.")
	}
}

// MethodNotAllowedHandler answers known routes hit with an unsupported method.
func MethodNotAllowedHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		RespondError(w, logger, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	}
}
