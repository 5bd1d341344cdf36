package api

import (
	"net/http"

	"github.com/wayfare-app/wayfare/internal/config"
	"github.com/wayfare-app/wayfare/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Journeys.Handler().Routes(),
		domain.DataPoints.Handler(domain.Events.Trigger).Routes(),
		domain.Events.Handler().Routes(),
		domain.Documents.Handler(cfg.API.MaxUploadBytes(), domain.Timeline.Trigger).Routes(),
		domain.Agents.Handler().Routes(),
	)
}
