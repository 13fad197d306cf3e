package datastore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePinger returns queued results in order; once exhausted it keeps
// returning the last one.
type fakePinger struct {
	mu      sync.Mutex
	results []error
	calls   int
	closed  bool
	onPing  func(ctx context.Context) error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.mu.Lock()
	hook := f.onPing
	var result error
	if len(f.results) > 0 {
		idx := f.calls
		if idx >= len(f.results) {
			idx = len(f.results) - 1
		}
		result = f.results[idx]
	}
	f.calls++
	f.mu.Unlock()

	if hook != nil {
		return hook(ctx)
	}
	return result
}

func (f *fakePinger) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakePinger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errRefused = errors.New("connection refused")

func TestManager_StartsConnecting(t *testing.T) {
	m := NewManager(&fakePinger{}, "Redis", time.Second, time.Second)

	assert.Equal(t, Connecting, m.State())
	assert.Equal(t, "Redis", m.Name())
}

func TestManager_ProbeTransitions(t *testing.T) {
	pinger := &fakePinger{results: []error{nil, errRefused, nil}}
	m := NewManager(pinger, "Redis", time.Second, time.Second)
	ctx := context.Background()

	m.probe(ctx)
	assert.Equal(t, Connected, m.State())

	m.probe(ctx)
	assert.Equal(t, Disconnected, m.State())

	m.probe(ctx)
	assert.Equal(t, Connected, m.State())
}

func TestManager_ReconnectReportsConnecting(t *testing.T) {
	pinger := &fakePinger{results: []error{errRefused}}
	m := NewManager(pinger, "Redis", time.Second, time.Second)
	ctx := context.Background()

	m.probe(ctx)
	require.Equal(t, Disconnected, m.State())

	var during State
	pinger.onPing = func(ctx context.Context) error {
		during = m.State()
		return nil
	}
	m.probe(ctx)

	assert.Equal(t, Connecting, during)
	assert.Equal(t, Connected, m.State())
}

func TestManager_HealthyProbeDoesNotFlap(t *testing.T) {
	pinger := &fakePinger{}
	m := NewManager(pinger, "Redis", time.Second, time.Second)
	ctx := context.Background()

	m.probe(ctx)
	require.Equal(t, Connected, m.State())

	var during State
	pinger.onPing = func(ctx context.Context) error {
		during = m.State()
		return errRefused
	}
	m.probe(ctx)

	assert.Equal(t, Connected, during)
	assert.Equal(t, Disconnected, m.State())
}

func TestManager_PingTimeout(t *testing.T) {
	pinger := &fakePinger{onPing: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	m := NewManager(pinger, "Redis", time.Second, 20*time.Millisecond)

	start := time.Now()
	m.probe(context.Background())

	assert.Equal(t, Disconnected, m.State())
	assert.Less(t, time.Since(start), time.Second)
}

func TestManager_Close(t *testing.T) {
	pinger := &fakePinger{}
	m := NewManager(pinger, "Redis", time.Second, time.Second)
	m.probe(context.Background())
	require.Equal(t, Connected, m.State())

	require.NoError(t, m.Close())
	assert.Equal(t, Disconnected, m.State())
	assert.True(t, pinger.closed)

	// probes after close must not resurrect the connection
	m.probe(context.Background())
	assert.Equal(t, Disconnected, m.State())

	assert.NoError(t, m.Close())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	pinger := &fakePinger{}
	m := NewManager(pinger, "Redis", 10*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return pinger.callCount() >= 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, Connected, m.State())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
