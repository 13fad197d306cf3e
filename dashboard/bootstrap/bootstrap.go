package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
	"github.com/yaron8/ops-dashboard/dashboard/client"
	"github.com/yaron8/ops-dashboard/dashboard/config"
	"github.com/yaron8/ops-dashboard/dashboard/poller"
	"github.com/yaron8/ops-dashboard/dashboard/tui"
	"github.com/yaron8/ops-dashboard/logi"
)

type Bootstrap struct {
	config    *config.Config
	poller    *poller.Poller
	dashboard *aggregator.Dashboard
	plain     bool
	logger    *slog.Logger
}

// NewBootstrap wires client, poller and state. plain forces headless output.
func NewBootstrap(plain bool) (*Bootstrap, error) {
	cfg, err := config.Load(os.Getenv("DASHBOARD_CONFIG"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logi.NewLog(&logi.Config{
		App:    "dashboard",
		LogDir: cfg.Log.Dir,
		Level:  logi.ParseLevel(cfg.Log.Level),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return &Bootstrap{
		config:    cfg,
		poller:    poller.NewPoller(client.NewClient(cfg.APIBase)),
		dashboard: aggregator.NewDashboard(),
		plain:     plain,
		logger:    logger,
	}, nil
}

// Start runs until the user quits or SIGINT/SIGTERM arrives. Without a
// terminal on stdout it falls back to one summary line per poll.
func (b *Bootstrap) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b.logger.Info("Dashboard starting", "api_base", b.config.APIBase, "plain", b.plain)

	if b.plain || !term.IsTerminal(os.Stdout.Fd()) {
		b.runPlain(ctx, os.Stdout)
		b.logger.Info("Dashboard stopped")
		return nil
	}

	return b.runTUI(ctx)
}

func (b *Bootstrap) runTUI(ctx context.Context) error {
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(
		tui.NewModel(b.dashboard, b.config),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	go b.poller.Run(pollCtx, func(res aggregator.Result) {
		program.Send(tui.SnapshotMsg(res))
	})

	_, err := program.Run()
	// stop polling before anything else so no result targets a dead program
	cancel()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}

	b.logger.Info("Dashboard stopped")
	return nil
}
