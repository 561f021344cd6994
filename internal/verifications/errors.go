package verifications

import (
	"errors"
	"net/http"
)

// Domain errors for verification operations.
var (
	ErrNotFound     = errors.New("verification not found")
	ErrDuplicate    = errors.New("verification already exists")
	ErrForbidden    = errors.New("operation not permitted")
	ErrInvalidInput = errors.New("invalid verification input")

	// ErrInvariant marks a type/detail mismatch reaching the orchestrator
	// after validation. It is a defect, not a user error, and aborts the
	// transaction.
	ErrInvariant = errors.New("verification invariant violated")
)

// MapHTTPStatus maps verification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
