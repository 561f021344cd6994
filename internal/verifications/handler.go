package verifications

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/ability"
	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/handlers"
	"github.com/lendcore/veriflow/pkg/pagination"
	"github.com/lendcore/veriflow/pkg/routes"
	"github.com/lendcore/veriflow/pkg/validation"
)

// Handler provides HTTP endpoints for verification workflows. Responses
// carry display views with fields the caller may not read cleared.
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
		logger:     logger.With("handler", "verifications"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for verification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/verifications",
		Tags:   []string{"verifications"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of verification views with optional query
// parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), caller, page, filters)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.toViewPage(caller, result))
}

// Find returns a single verification view by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	caller := callerFrom(r)
	record, err := h.sys.Find(r.Context(), caller, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.toView(caller, record))
}

// Create runs the create workflow and returns the stored verification view.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	caller := callerFrom(r)
	record, err := h.sys.Create(r.Context(), caller, cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, h.toView(caller, record))
}

// Update runs the update workflow against the verification identified in
// the path.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	var cmd UpdateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}
	cmd.ID = id

	caller := callerFrom(r)
	record, err := h.sys.Update(r.Context(), caller, cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.toView(caller, record))
}

// Delete soft-deletes the verification identified in the path.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	if err := h.sys.Delete(r.Context(), callerFrom(r), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search accepts a JSON body with pagination and filter criteria and
// returns matching verification views.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	caller := callerFrom(r)
	result, err := h.sys.List(r.Context(), caller, req.PageRequest, req.Filters)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.toViewPage(caller, result))
}

func (h *Handler) toView(caller *identity.Caller, record *Verification) View {
	view := ToView(record)
	view.Redact(h.ability.Can(caller, ability.ActionRead, ability.SubjectVerification, ability.FieldRemarks))
	return view
}

func (h *Handler) toViewPage(
	caller *identity.Caller,
	result *pagination.PageResult[Verification],
) pagination.PageResult[View] {
	views := make([]View, len(result.Data))
	for i := range result.Data {
		views[i] = h.toView(caller, &result.Data[i])
	}

	return pagination.PageResult[View]{
		Data:       views,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		handlers.RespondFieldErrors(w, fieldErrs)
		return
	}

	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

func callerFrom(r *http.Request) *identity.Caller {
	if caller, ok := identity.CallerFrom(r.Context()); ok {
		return &caller
	}
	return nil
}
