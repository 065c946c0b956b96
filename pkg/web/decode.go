package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst. The body must hold exactly one JSON
// value of at most MaxBodyBytes. Failures are returned as 400 or 413 *Error.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return decodeError(err)
		}
		return NewError(http.StatusBadRequest, "Request body contains badly-formed JSON")
	}
	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return NewError(http.StatusRequestEntityTooLarge, "Request body must not be larger than %d bytes", maxBytesErr.Limit)
	case errors.Is(err, io.EOF):
		return NewError(http.StatusBadRequest, "Request body must not be empty")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return NewError(http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return NewError(http.StatusBadRequest, "Request body must be a JSON object")
		}
		return NewError(http.StatusBadRequest, "Invalid value for field '%s': expected %s", typeErr.Field, typeErr.Type)
	default:
		return NewError(http.StatusBadRequest, "Invalid request body: %v", err)
	}
}

// ValidateStruct runs validator rules on s. Rule violations are returned as a 400 *Error
// whose Details map each field to the rule it failed.
func ValidateStruct(validate *validator.Validate, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewError(http.StatusBadRequest, "Invalid request body")
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		// fieldErr.Tag() returns "required", "max", etc.
		details[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
	}
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "Request body failed validation",
		Details: details,
	}
}
