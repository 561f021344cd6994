package timeline

import (
	"errors"
	"net/http"
)

// Domain errors for timeline operations.
var (
	ErrNotFound     = errors.New("timeline event not found")
	ErrDuplicate    = errors.New("timeline event already exists")
	ErrForbidden    = errors.New("operation not permitted")
	ErrInvalidInput = errors.New("invalid timeline query")
)

// MapHTTPStatus maps timeline domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
