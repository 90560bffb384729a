package server

import (
	"net/http"

	"github.com/printfleet/supply-service/internal/pkg/httputil"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/pkg/middleware"
)

// Registrar is implemented by every domain handler.
type Registrar interface {
	Register(mux *http.ServeMux)
}

// NewRouter mounts all domain handlers under /v1 behind tenant extraction,
// wraps everything with request-id, logging, and per-tenant rate limiting.
func NewRouter(log logger.Logger, limiter *middleware.TenantLimiter, registrars ...Registrar) http.Handler {
	api := http.NewServeMux()
	for _, r := range registrars {
		r.Register(api)
	}

	root := http.NewServeMux()
	root.Handle("/v1/", middleware.WithTenant(api))
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	var handler http.Handler = root
	if limiter != nil {
		handler = middleware.WithRateLimit(limiter, handler)
	}
	handler = middleware.WithLogging(log, handler)
	return middleware.WithRequestID(handler)
}
