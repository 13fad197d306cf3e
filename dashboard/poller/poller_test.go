package poller

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "poller-test-logs")
	if err != nil {
		panic(err)
	}
	if _, err := logi.NewLog(&logi.Config{LogDir: dir}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fetchFunc func(ctx context.Context) (*telemetrics.Snapshot, error)

func (f fetchFunc) FetchSnapshot(ctx context.Context) (*telemetrics.Snapshot, error) {
	return f(ctx)
}

type recorder struct {
	mu      sync.Mutex
	results []aggregator.Result
}

func (r *recorder) sink(res aggregator.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func (r *recorder) snapshot() []aggregator.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]aggregator.Result(nil), r.results...)
}

func newTestPoller(f fetchFunc, interval time.Duration) *Poller {
	p := NewPoller(f)
	p.interval = interval
	return p
}

func TestNewPoller_FixedInterval(t *testing.T) {
	p := NewPoller(fetchFunc(nil))
	assert.Equal(t, 10*time.Second, p.interval)
}

func TestRun_PollsImmediatelyAndOnTicks(t *testing.T) {
	snap := &telemetrics.Snapshot{Metrics: []telemetrics.Metric{{Key: "cpu", Value: 1}}}
	p := newTestPoller(func(ctx context.Context) (*telemetrics.Snapshot, error) {
		return snap, nil
	}, 20*time.Millisecond)

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, rec.sink)
		close(done)
	}()

	require.Eventually(t, func() bool { return rec.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	for _, res := range rec.snapshot() {
		assert.NoError(t, res.Err)
		assert.Same(t, snap, res.Snapshot)
	}
}

func TestRun_FailuresAreDelivered(t *testing.T) {
	p := newTestPoller(func(ctx context.Context) (*telemetrics.Snapshot, error) {
		return nil, errors.New("HTTP 500")
	}, time.Hour)

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx, rec.sink)

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	res := rec.snapshot()[0]
	assert.EqualError(t, res.Err, "HTTP 500")
	assert.Nil(t, res.Snapshot)

	// no retry before the next tick
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

// A response that resolves after teardown must not reach the sink.
func TestRun_StaleResponseDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := newTestPoller(func(ctx context.Context) (*telemetrics.Snapshot, error) {
		close(started)
		<-release
		return &telemetrics.Snapshot{}, nil
	}, time.Hour)

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, rec.sink)
		close(done)
	}()

	<-started
	cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, rec.count())
}

func TestRun_SequentialFetches(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	p := newTestPoller(func(ctx context.Context) (*telemetrics.Snapshot, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(15 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return &telemetrics.Snapshot{}, nil
	}, time.Millisecond)

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, rec.sink)
		close(done)
	}()

	require.Eventually(t, func() bool { return rec.count() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxInFlight)
}

func TestRun_ReturnsImmediatelyWhenCancelled(t *testing.T) {
	calls := 0
	p := newTestPoller(func(ctx context.Context) (*telemetrics.Snapshot, error) {
		calls++
		return nil, ctx.Err()
	}, time.Hour)

	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p.Run(ctx, rec.sink)

	assert.Equal(t, 1, calls)
	assert.Zero(t, rec.count())
}
