package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/sampler/config"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

// SnapshotSource produces one fresh snapshot per call.
type SnapshotSource interface {
	Sample() telemetrics.Snapshot
}

type APIServer struct {
	config  *config.Config
	sampler SnapshotSource
	server  *http.Server
	logger  *slog.Logger
}

// NewAPIServer builds the server up front, so Start and Shutdown may run
// on different goroutines in any order.
func NewAPIServer(config *config.Config, sampler SnapshotSource) *APIServer {
	api := &APIServer{
		config:  config,
		sampler: sampler,
		logger:  logi.GetLogger(),
	}

	api.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      api.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return api
}

// Handler builds the routed, instrumented handler tree.
func (api *APIServer) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", api.healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/data", api.dataHandler).Methods(http.MethodGet)

	// /metrics-snapshot is the same document under its protocol name
	r.HandleFunc("/api/metrics", api.snapshotHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics-snapshot", api.snapshotHandler).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(api.middleware)

	return cors(r)
}

// Start serves until Shutdown. A Shutdown that lands first makes Start
// return nil straight away.
func (api *APIServer) Start() error {
	api.logger.Info("Sampler APIServer starting", "port", api.config.Port)

	if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		api.logger.Error("Server failed to start", "error", err, "port", api.config.Port)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests.
func (api *APIServer) Shutdown(ctx context.Context) error {
	api.logger.Info("Sampler APIServer shutting down")
	return api.server.Shutdown(ctx)
}
