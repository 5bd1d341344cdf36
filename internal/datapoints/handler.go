package datapoints

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/pkg/handlers"
	"github.com/wayfare-app/wayfare/pkg/pagination"
	"github.com/wayfare-app/wayfare/pkg/routes"
)

// EventTrigger is invoked with the ids of journey events enqueued by a
// successful intake, so processing can start without waiting for the next
// sweep.
type EventTrigger func(ids []uuid.UUID)

// Handler provides HTTP endpoints for data point operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	trigger    EventTrigger
}

// IngestRequest is the batch intake request body.
type IngestRequest struct {
	DataPoints []IngestRecord `json:"dataPoints"`
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, and event trigger. A nil trigger leaves event processing to the
// pending sweep.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	trigger EventTrigger,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "datapoints"),
		pagination: pagination,
		trigger:    trigger,
	}
}

// Routes returns the route group definition for data point endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/datapoints",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Ingest},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
		},
	}
}

// Ingest accepts a batch of data points, persists them, and enqueues journey
// events. Responds 202 on success; an empty batch is a 400.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	result, events, err := h.sys.Ingest(r.Context(), req.DataPoints)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if h.trigger != nil && len(events) > 0 {
		h.trigger(events)
	}

	handlers.RespondJSON(w, http.StatusAccepted, result)
}

// List returns a paginated list of data points with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single data point by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	dp, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, dp)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching data points.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidBody)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
