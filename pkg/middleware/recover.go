package middleware

import (
	"log/slog"
	"net/http"
)

// Recover returns middleware that converts handler panics into 500 responses
// instead of tearing down the connection. The panic value is logged with the
// request path; the response body stays opaque.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(
						"handler panic",
						"panic", rec,
						"method", r.Method,
						"uri", r.URL.RequestURI(),
					)
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"internal_error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
