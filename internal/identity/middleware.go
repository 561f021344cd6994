package identity

import (
	"log/slog"
	"net/http"

	"github.com/lendcore/veriflow/pkg/handlers"
)

// Middleware resolves the caller for each request and stores it in the
// request context. Requests without a resolvable identity receive 401.
func Middleware(resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := resolver.Resolve(r)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusUnauthorized, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}
