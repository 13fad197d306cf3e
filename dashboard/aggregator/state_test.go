package aggregator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

func testSnapshot(cpu float64) *telemetrics.Snapshot {
	return &telemetrics.Snapshot{
		Metrics:   []telemetrics.Metric{pct("cpu", cpu)},
		Services:  []telemetrics.Service{{Name: "Redis", Status: telemetrics.StatusOperational, Latency: 35}},
		Clusters:  []telemetrics.Cluster{{Name: "local-cluster", Nodes: 1, Pods: 3, Utilization: cpu}},
		Regions:   []telemetrics.Region{{Name: "local", Traffic: 100}},
		Timestamp: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewDashboard(t *testing.T) {
	d := NewDashboard()

	assert.True(t, d.Loading)
	assert.Equal(t, HealthLoading, d.Health())
	assert.Empty(t, d.Metrics)
}

func TestDashboard_ApplySnapshot(t *testing.T) {
	d := NewDashboard()

	d.Apply(Result{Snapshot: testSnapshot(12)})

	assert.False(t, d.Loading)
	assert.Empty(t, d.Err)
	assert.Equal(t, HealthHealthy, d.Health())
	require.Len(t, d.Metrics, 1)
	assert.Len(t, d.Metrics[0].History, HistoryPoints)
	assert.Len(t, d.Services, 1)
	assert.NotNil(t, d.Alerts)
	assert.Empty(t, d.Alerts)
	assert.Equal(t, time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC), d.UpdatedAt)
}

func TestDashboard_ApplyZeroTimestampUsesNow(t *testing.T) {
	d := NewDashboard()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	snap := testSnapshot(1)
	snap.Timestamp = time.Time{}
	d.Apply(Result{Snapshot: snap})

	assert.Equal(t, fixed, d.UpdatedAt)
}

func TestDashboard_FailureKeepsLastKnownGood(t *testing.T) {
	d := NewDashboard()
	d.Apply(Result{Snapshot: testSnapshot(10)})
	d.Apply(Result{Snapshot: testSnapshot(20)})
	before, ok := d.Series("cpu")
	require.True(t, ok)
	updated := d.UpdatedAt

	d.Apply(Result{Err: errors.New("HTTP 503")})

	assert.Equal(t, "HTTP 503", d.Err)
	assert.Equal(t, HealthError, d.Health())
	after, ok := d.Series("cpu")
	require.True(t, ok)
	assert.Equal(t, before.History, after.History)
	assert.Len(t, d.Services, 1)
	assert.Len(t, d.Clusters, 1)
	assert.Equal(t, updated, d.UpdatedAt)
}

func TestDashboard_RecoveryClearsError(t *testing.T) {
	d := NewDashboard()
	d.Apply(Result{Err: errors.New("connection refused")})
	require.Equal(t, HealthError, d.Health())
	assert.Empty(t, d.Metrics)

	d.Apply(Result{Snapshot: testSnapshot(5)})

	assert.Empty(t, d.Err)
	assert.Equal(t, HealthHealthy, d.Health())
}

func TestDashboard_EmptyErrorMessage(t *testing.T) {
	d := NewDashboard()

	d.Apply(Result{Err: errors.New("")})
	assert.Equal(t, "Unable to fetch metrics", d.Err)

	d.Apply(Result{})
	assert.Equal(t, "Unable to fetch metrics", d.Err)
}

func TestDashboard_AlertsReplacedEachPoll(t *testing.T) {
	d := NewDashboard()
	down := testSnapshot(1)
	down.Alerts = []telemetrics.Alert{{Severity: telemetrics.SeverityCritical, Title: "Redis down"}}

	d.Apply(Result{Snapshot: down})
	require.Len(t, d.Alerts, 1)

	d.Apply(Result{Snapshot: testSnapshot(1)})
	assert.Empty(t, d.Alerts)
}

func TestDashboard_SeriesUnknownKey(t *testing.T) {
	d := NewDashboard()
	_, ok := d.Series("disk")
	assert.False(t, ok)
}
