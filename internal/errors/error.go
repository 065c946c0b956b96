// Package errors holds the errors of the product domain.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// NotFoundError reports the id that was looked up. It matches ErrProductNotFound with errors.Is.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// NotFound returns a *NotFoundError for id.
func NotFound(id int64) error {
	return &NotFoundError{ID: id}
}
