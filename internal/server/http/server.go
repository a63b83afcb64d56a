// Package http exposes the inbound HTTP surface: four synthesis shapes,
// liveness, and metrics, all relaying to one upstream synthesis service.
package http

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AuroraBackcountry/aurora-tts-service/internal/config"
	"github.com/AuroraBackcountry/aurora-tts-service/internal/service"
)

// Server serves the inbound HTTP API.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

var remapClientErrors sync.Once

// applyClientErrorStatus installs the huma error constructor once per process.
// huma reports body parse and validation failures as 422; this API's contract
// is 400 for every client input error.
func applyClientErrorStatus() {
	remapClientErrors.Do(func() {
		defaultNewError := huma.NewError
		huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
			}
			return defaultNewError(status, message, errs...)
		}
	})
}

// New creates a new Server instance with all routes registered.
func New(cfg *config.Config, svc *service.TTS, version string) *Server {
	applyClientErrorStatus()

	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("Aurora TTS Service", version)
	// Plain response bodies; no $schema injection.
	humaConfig.CreateHooks = nil

	api := humago.New(mux, humaConfig)

	NewTTSHandler(api, svc, cfg.Auth.SharedToken)
	NewHealthHandler(api)

	mux.Handle("GET /metrics", promhttp.Handler())

	handler := collapseSlashes(requestLogger(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		},
		handler: handler,
	}
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
