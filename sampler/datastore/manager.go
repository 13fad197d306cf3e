package datastore

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/metrics"
)

// Manager owns the datastore connection and keeps a cached connection
// state that readers can query without touching the network.
type Manager struct {
	pinger        Pinger
	name          string
	checkInterval time.Duration
	pingTimeout   time.Duration
	logger        *slog.Logger

	state     atomic.Int32
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewManager creates a Manager in the Connecting state. Call Run to start probing.
func NewManager(pinger Pinger, name string, checkInterval, pingTimeout time.Duration) *Manager {
	m := &Manager{
		pinger:        pinger,
		name:          name,
		checkInterval: checkInterval,
		pingTimeout:   pingTimeout,
		logger:        logi.GetLogger(),
	}
	m.state.Store(int32(Connecting))
	metrics.SetDatastoreState(int(Connecting))
	return m
}

func (m *Manager) State() State {
	return State(m.state.Load())
}

func (m *Manager) Name() string {
	return m.name
}

// Run probes the datastore immediately and then on every check interval
// until ctx is cancelled or the manager is closed.
func (m *Manager) Run(ctx context.Context) {
	m.logger.Info("Datastore manager starting",
		"datastore", m.name,
		"check_interval", m.checkInterval,
		"ping_timeout", m.pingTimeout)

	m.probe(ctx)

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.closed.Load() {
				return
			}
			m.probe(ctx)
		}
	}
}

func (m *Manager) probe(ctx context.Context) {
	// A probe after a failure is a reconnect attempt.
	if m.State() == Disconnected {
		m.setState(Connecting)
	}

	pingCtx, cancel := context.WithTimeout(ctx, m.pingTimeout)
	err := m.pinger.Ping(pingCtx)
	cancel()

	if ctx.Err() != nil {
		return
	}

	if err != nil {
		if m.State() != Disconnected {
			m.logger.Warn("Datastore ping failed", "datastore", m.name, "error", err)
		}
		m.setState(Disconnected)
		return
	}

	m.setState(Connected)
}

func (m *Manager) setState(next State) {
	if m.closed.Load() && next != Disconnecting && next != Disconnected {
		return
	}

	prev := State(m.state.Swap(int32(next)))
	if prev == next {
		return
	}

	metrics.SetDatastoreState(int(next))
	m.logger.Info("Datastore state changed",
		"datastore", m.name,
		"from", prev.String(),
		"to", next.String())
}

// Close marks the connection as disconnecting, releases the driver and
// leaves the manager Disconnected. Safe to call more than once.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.setState(Disconnecting)
		err = m.pinger.Close()
		m.setState(Disconnected)
	})
	return err
}
