package loans

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/handlers"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/routes"
)

// Handler provides HTTP endpoints for loan application operations.
type Handler struct {
	sys        System
	ability    *ability.Resolver
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, ability resolver,
// logger, and pagination config.
func NewHandler(
	sys System,
	resolver *ability.Resolver,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		ability:    resolver,
		logger:     logger.With("handler", "loans"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for loan application endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/loans",
		Tags:   []string{"loans"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
		},
	}
}

// List returns a paginated list of loan applications with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), caller, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single loan application by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	l, err := h.sys.Find(r.Context(), callerFrom(r), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, l)
}

// Create registers a new loan application in PENDING_VERIFICATION.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	l, err := h.sys.Create(r.Context(), callerFrom(r), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, l)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching loan applications.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	result, err := h.sys.List(r.Context(), callerFrom(r), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func callerFrom(r *http.Request) *identity.Caller {
	if caller, ok := identity.CallerFrom(r.Context()); ok {
		return &caller
	}
	return nil
}
