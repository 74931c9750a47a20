// cmd/worker/startup.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"ecommerce-backend/pkg/container"
)

// healthServer - /health và /ready cho liveness/readiness probe
type healthServer struct {
	srv *http.Server
}

// startServices performs health checks and starts the health endpoint
func startServices(ctx context.Context, c *container.Container, cfg *workerConfig) (*healthServer, error) {
	log.Info().Msg("============================================")
	log.Info().Msg("🚀 Ecommerce Worker Starting...")
	log.Info().Msg("============================================")

	if err := checkAll(ctx, c); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP", "service": "ecommerce-worker"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := c.Cache.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "NOT_READY", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "READY"})
	})

	hs := &healthServer{srv: &http.Server{
		Addr:              cfg.HealthAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}

	go func() {
		log.Info().Str("addr", cfg.HealthAddr).Msg("[Health] Starting health check server")
		if err := hs.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("[Health] Failed to start")
		}
	}()

	return hs, nil
}

// checkAll runs all health checks
func checkAll(ctx context.Context, c *container.Container) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", c.Cache.Ping},
		{"Database Connection", c.DB.HealthCheck},
	}

	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("❌ Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("✓ OK")
	}

	return nil
}

func (h *healthServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("[Health] Shutdown error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
