package agents

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wayfare-app/wayfare/pkg/handlers"
	"github.com/wayfare-app/wayfare/pkg/routes"
)

// Handler provides HTTP endpoints for agent runner operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// RunRequest selects which agent to run. Empty runs both.
type RunRequest struct {
	AgentType string `json:"agentType"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "agents"),
	}
}

// Routes returns the route group definition for agent endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/agents",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/run", Handler: h.Run},
		},
	}
}

// Run executes the selected agents immediately and reports the outcome.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
			return
		}
	}

	report, err := h.sys.Run(r.Context(), req.AgentType)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}
