package telemetrics

import (
	"encoding/json"
	"time"
)

// Metric units
const (
	UnitPercent = "%"
	UnitMinutes = "min"
	UnitMillis  = "ms"
)

// Metric keys, stable across snapshots
const (
	KeyCPU    = "cpu"
	KeyMemory = "memory"
	KeyHeap   = "heap"
	KeyLoad   = "load"
	KeyUptime = "uptime"
)

type ServiceStatus string

const (
	StatusOperational ServiceStatus = "operational"
	StatusDegraded    ServiceStatus = "degraded"
	StatusDown        ServiceStatus = "down"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Metric is one named, unit-tagged sample.
type Metric struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type Service struct {
	Name    string        `json:"name"`
	Status  ServiceStatus `json:"status"`
	Latency int           `json:"latency"`
}

type Alert struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
}

type Cluster struct {
	Name        string  `json:"name"`
	Nodes       int     `json:"nodes"`
	Pods        int     `json:"pods"`
	Utilization float64 `json:"utilization"`
}

type Region struct {
	Name    string  `json:"name"`
	Traffic float64 `json:"traffic"`
}

// Snapshot is one complete point-in-time response of the metrics endpoint.
type Snapshot struct {
	Metrics   []Metric  `json:"metrics"`
	Services  []Service `json:"services"`
	Alerts    []Alert   `json:"alerts"`
	Clusters  []Cluster `json:"clusters"`
	Regions   []Region  `json:"regions"`
	Timestamp time.Time `json:"timestamp"`
}

// TimestampLayout matches the ISO-8601 form browsers produce for Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// MarshalJSON keeps every list as [] instead of null and writes the
// timestamp in UTC with millisecond precision.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type wire struct {
		Metrics   []Metric  `json:"metrics"`
		Services  []Service `json:"services"`
		Alerts    []Alert   `json:"alerts"`
		Clusters  []Cluster `json:"clusters"`
		Regions   []Region  `json:"regions"`
		Timestamp string    `json:"timestamp"`
	}

	w := wire{
		Metrics:   s.Metrics,
		Services:  s.Services,
		Alerts:    s.Alerts,
		Clusters:  s.Clusters,
		Regions:   s.Regions,
		Timestamp: s.Timestamp.UTC().Format(TimestampLayout),
	}
	if w.Metrics == nil {
		w.Metrics = []Metric{}
	}
	if w.Services == nil {
		w.Services = []Service{}
	}
	if w.Alerts == nil {
		w.Alerts = []Alert{}
	}
	if w.Clusters == nil {
		w.Clusters = []Cluster{}
	}
	if w.Regions == nil {
		w.Regions = []Region{}
	}

	return json.Marshal(w)
}

// Health is the /health response body.
type Health struct {
	Status string `json:"status"`
}

// Greeting is the /api/data response body.
type Greeting struct {
	Message string `json:"message"`
}
