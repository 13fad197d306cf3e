package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

// PollInterval is fixed by the protocol and not configurable.
const PollInterval = 10 * time.Second

// Fetcher retrieves one snapshot.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*telemetrics.Snapshot, error)
}

// Sink receives poll results. It is called from the poller goroutine and
// may see one final call racing with cancellation, so it must tolerate
// being invoked after its consumer has stopped.
type Sink func(aggregator.Result)

type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
}

func NewPoller(fetcher Fetcher) *Poller {
	return &Poller{
		fetcher:  fetcher,
		interval: PollInterval,
		logger:   logi.GetLogger(),
	}
}

// Run polls once immediately and then on every tick until ctx is cancelled.
// Fetches are sequential, so at most one is in flight. A result that
// arrives after ctx is cancelled is dropped. Failures are delivered to
// sink like any other result and retried only on the next tick.
func (p *Poller) Run(ctx context.Context, sink Sink) {
	p.logger.Info("Poller starting", "interval", p.interval)

	p.poll(ctx, sink)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx, sink)
		}
	}
}

func (p *Poller) poll(ctx context.Context, sink Sink) {
	snap, err := p.fetcher.FetchSnapshot(ctx)

	// Narrows, but cannot close, the window before sink; see Sink.
	if ctx.Err() != nil {
		p.logger.Debug("Dropping stale poll result")
		return
	}

	if err != nil {
		p.logger.Error("Error fetching snapshot", "error", err)
		sink(aggregator.Result{Err: err})
		return
	}

	p.logger.Debug("Snapshot fetched", "metrics", len(snap.Metrics), "alerts", len(snap.Alerts))
	sink(aggregator.Result{Snapshot: snap})
}
