// Package handlers provides shared HTTP response helpers for domain handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lendcore/veriflow/pkg/validation"
)

// RespondJSON writes v as a JSON response body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError writes a JSON error envelope. Status codes at or above 500
// hide the underlying error behind an opaque message; the full error is
// logged server-side only.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
		message = "internal_error"
	}

	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondFieldErrors writes a 422 response carrying per-field message keys.
func RespondFieldErrors(w http.ResponseWriter, errs validation.FieldErrors) {
	RespondJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation_failed",
		"fields": errs,
	})
}
