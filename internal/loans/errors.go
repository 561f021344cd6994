package loans

import (
	"errors"
	"net/http"
)

// Domain errors for loan application operations.
var (
	ErrNotFound      = errors.New("loan application not found")
	ErrDuplicate     = errors.New("loan application already exists")
	ErrInvalidStatus = errors.New("invalid loan status")
	ErrInvalidInput  = errors.New("invalid loan application input")
	ErrForbidden     = errors.New("operation not permitted")
)

// MapHTTPStatus maps loan domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
