package timeline

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/handlers"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/routes"
)

// Handler provides HTTP endpoints for timeline reads.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "timeline"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for timeline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/timeline",
		Tags:   []string{"timeline"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
		},
	}
}

// List returns a paginated timeline for the loan application given in the
// loan_application_id query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(r.URL.Query().Get("loan_application_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	var caller *identity.Caller
	if c, ok := identity.CallerFrom(r.Context()); ok {
		caller = &c
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), caller, page, loanID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
