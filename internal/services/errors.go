package services

import (
	"errors"
	"fmt"
)

// ErrProductNotFound matches every NotFoundError via errors.Is.
var ErrProductNotFound = errors.New("product not found")

// NotFoundError is returned when a requested product ID does not exist.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product not found with id: %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
