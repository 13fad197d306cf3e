package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/sampler/config"
	"github.com/yaron8/ops-dashboard/sampler/datastore"
	"github.com/yaron8/ops-dashboard/sampler/service"
	"github.com/yaron8/ops-dashboard/sampler/snapshot"
)

const shutdownTimeout = 10 * time.Second

type Bootstrap struct {
	config    *config.Config
	datastore *datastore.Manager
	apiServer *service.APIServer
	logger    *slog.Logger
}

func NewBootstrap() (*Bootstrap, error) {
	cfg, err := config.Load(os.Getenv("SAMPLER_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logi.NewLog(&logi.Config{
		App:    "sampler",
		LogDir: cfg.Log.Dir,
		Level:  logi.ParseLevel(cfg.Log.Level),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	pinger, name, err := datastore.NewPinger(cfg.Datastore.URL)
	if err != nil {
		return nil, fmt.Errorf("creating datastore driver: %w", err)
	}
	if cfg.Datastore.Name != "" {
		name = cfg.Datastore.Name
	}

	manager := datastore.NewManager(pinger, name, cfg.Datastore.CheckInterval, cfg.Datastore.PingTimeout)

	sampler := snapshot.NewSampler(
		manager,
		snapshot.NewHostProbe(),
		snapshot.NewHeapProbe(),
		cfg.SnapshotSettings(),
	)

	return &Bootstrap{
		config:    cfg,
		datastore: manager,
		apiServer: service.NewAPIServer(cfg, sampler),
		logger:    logger,
	}, nil
}

// Start runs the datastore manager and the API server until SIGINT/SIGTERM.
// Only a listener failure is returned as an error.
func (b *Bootstrap) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go b.datastore.Run(ctx)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- b.apiServer.Start()
	}()

	select {
	case err := <-serverErr:
		b.datastore.Close()
		return err
	case <-ctx.Done():
	}

	b.logger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := b.apiServer.Shutdown(shutdownCtx); err != nil {
		b.logger.Error("Server forced to shutdown", "error", err)
	}

	if err := b.datastore.Close(); err != nil {
		b.logger.Error("Error closing datastore", "error", err)
	}

	b.logger.Info("Sampler stopped")
	return nil
}
