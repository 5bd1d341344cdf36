// Package api assembles the API module with all domain systems and route
// registration.
package api

import (
	"net/http"

	"github.com/wayfare-app/wayfare/internal/config"
	"github.com/wayfare-app/wayfare/internal/infrastructure"
	"github.com/wayfare-app/wayfare/pkg/middleware"
	"github.com/wayfare-app/wayfare/pkg/module"
)

// NewModule creates the API module with all domain handlers, middleware, and
// background workers.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	if err := domain.Start(runtime); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
