package main

import (
	"log"
	"net/http"

	"spendwise/internal/domain/catalog"
	httphandlers "spendwise/internal/interfaces/http"
	"spendwise/internal/shared/config"
	"spendwise/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	httphandlers.RegisterRoutes(mux, deps.Store, deps.Store, catalog.Entries())

	var handler http.Handler = mux
	if deps.JWT != nil {
		handler = middleware.Auth(deps.JWT, cfg.Auth.Required)(handler)
	} else {
		log.Println("JWT_SECRET not set, requests carry no identity")
	}

	// Apply global middleware
	handler = middleware.CORS(cfg.Server.AllowedHosts)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Telemetry(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)

	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
