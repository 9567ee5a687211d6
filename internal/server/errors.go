package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/candidate-intake/internal/db"
	"github.com/jonathan/candidate-intake/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if errors.Is(err, db.ErrNotFound) {
		return http.StatusNotFound
	}

	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
