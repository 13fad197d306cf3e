package aggregator

import (
	"time"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

const defaultFetchError = "Unable to fetch metrics"

// Health labels shown in the header badge
const (
	HealthLoading = "Loading..."
	HealthError   = "Error"
	HealthHealthy = "Healthy"
)

// Result is the outcome of one poll: a snapshot or an error.
type Result struct {
	Snapshot *telemetrics.Snapshot
	Err      error
}

// Dashboard is the aggregated data state behind the presentation.
type Dashboard struct {
	Metrics   []Series
	Services  []telemetrics.Service
	Alerts    []telemetrics.Alert
	Clusters  []telemetrics.Cluster
	Regions   []telemetrics.Region
	UpdatedAt time.Time
	Loading   bool
	Err       string

	now func() time.Time
}

func NewDashboard() *Dashboard {
	return &Dashboard{
		Loading: true,
		now:     time.Now,
	}
}

// Apply folds a poll result into the state. A failed poll only records the
// error; every series and list from the last good snapshot stays in place.
func (d *Dashboard) Apply(res Result) {
	d.Loading = false

	if res.Err != nil || res.Snapshot == nil {
		d.Err = defaultFetchError
		if res.Err != nil && res.Err.Error() != "" {
			d.Err = res.Err.Error()
		}
		return
	}

	snap := res.Snapshot
	d.Metrics = Merge(d.Metrics, snap.Metrics)
	d.Services = orEmpty(snap.Services)
	d.Alerts = orEmpty(snap.Alerts)
	d.Clusters = orEmpty(snap.Clusters)
	d.Regions = orEmpty(snap.Regions)

	d.UpdatedAt = snap.Timestamp
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.now()
	}
	d.Err = ""
}

// Health is the header badge text.
func (d *Dashboard) Health() string {
	switch {
	case d.Loading:
		return HealthLoading
	case d.Err != "":
		return HealthError
	default:
		return HealthHealthy
	}
}

// Series returns the series for key, or false if the key has not been seen.
func (d *Dashboard) Series(key string) (Series, bool) {
	for _, s := range d.Metrics {
		if s.Key == key {
			return s, true
		}
	}
	return Series{}, false
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
