package wizard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lendcore/veriflow/internal/identity"
	"github.com/lendcore/veriflow/pkg/handlers"
	"github.com/lendcore/veriflow/pkg/routes"
)

// Handler provides HTTP endpoints for wizard sessions.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// MessageRequest is the body for posting a user message to a session.
type MessageRequest struct {
	Content string `json:"content"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "wizard"),
	}
}

// Routes returns the route group definition for wizard endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/wizard/sessions",
		Tags:   []string{"wizard"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/{id}/messages", Handler: h.Message},
		},
	}
}

// Create starts a new intake session and returns it with the opening
// assistant message.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.sys.Create(r.Context(), callerFrom(r))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, session)
}

// Find returns a session by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	session, err := h.sys.Find(r.Context(), callerFrom(r), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// Message appends a user message and runs one turn of the intake graph.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidInput)
		return
	}

	session, err := h.sys.Message(r.Context(), callerFrom(r), id, req.Content)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

func callerFrom(r *http.Request) *identity.Caller {
	if caller, ok := identity.CallerFrom(r.Context()); ok {
		return &caller
	}
	return nil
}
