package snapshot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/metrics"
	"github.com/yaron8/ops-dashboard/sampler/datastore"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

const datastoreDownDetail = "Database connection is not healthy"

// Settings holds the display-only constants of a snapshot. None of these
// are measured.
type Settings struct {
	APIServiceName     string
	APILatency         int
	OperationalLatency int
	DegradedLatency    int
	ClusterName        string
	ClusterNodes       int
	ClusterPods        int
	RegionName         string
	RegionTraffic      float64
}

func DefaultSettings() Settings {
	return Settings{
		APIServiceName:     "Backend API",
		APILatency:         20,
		OperationalLatency: 35,
		DegradedLatency:    180,
		ClusterName:        "local-cluster",
		ClusterNodes:       1,
		ClusterPods:        3,
		RegionName:         "local",
		RegionTraffic:      100,
	}
}

// Sampler builds snapshots from host counters and the cached datastore state.
// It holds no per-request state and is safe for concurrent use.
type Sampler struct {
	datastore datastore.StateReader
	host      HostProbe
	heap      HeapProbe
	settings  Settings
	now       func() time.Time
	started   time.Time
	logger    *slog.Logger
}

func NewSampler(ds datastore.StateReader, host HostProbe, heap HeapProbe, settings Settings) *Sampler {
	return &Sampler{
		datastore: ds,
		host:      host,
		heap:      heap,
		settings:  settings,
		now:       time.Now,
		started:   time.Now(),
		logger:    logi.GetLogger(),
	}
}

// Sample reads every counter and returns a fresh snapshot. It never fails:
// unavailable sensors are defaulted and a broken datastore is reported as data.
func (s *Sampler) Sample() telemetrics.Snapshot {
	load1, err := s.host.LoadAverage1()
	if err != nil {
		s.logger.Debug("Load average unavailable, using 0", "error", err)
		load1 = 0
	}
	cpu := CPUPercent(load1, s.host.NumCPU())

	var memory float64
	if total, free, err := s.host.Memory(); err != nil {
		s.logger.Debug("Memory counters unavailable, using 0", "error", err)
	} else {
		memory = MemoryPercent(total, free)
	}

	heapUsed, heapAllocated := s.heap.Heap()
	heap := HeapPercent(heapUsed, heapAllocated)

	uptime, err := s.host.Uptime()
	if err != nil {
		s.logger.Debug("Host uptime unavailable, using process uptime", "error", err)
		uptime = s.now().Sub(s.started)
	}

	snap := telemetrics.Snapshot{
		Metrics: []telemetrics.Metric{
			{Key: telemetrics.KeyCPU, Label: "CPU Utilization", Unit: telemetrics.UnitPercent, Value: cpu},
			{Key: telemetrics.KeyMemory, Label: "Memory Usage", Unit: telemetrics.UnitPercent, Value: memory},
			{Key: telemetrics.KeyHeap, Label: "Go Heap Used", Unit: telemetrics.UnitPercent, Value: heap},
			// Same signal as cpu, kept for clients that read "load".
			{Key: telemetrics.KeyLoad, Label: "1m Load / Core", Unit: telemetrics.UnitPercent, Value: cpu},
			{Key: telemetrics.KeyUptime, Label: "Uptime", Unit: telemetrics.UnitMinutes, Value: UptimeMinutes(uptime)},
		},
		Clusters: []telemetrics.Cluster{{
			Name:        s.settings.ClusterName,
			Nodes:       s.settings.ClusterNodes,
			Pods:        s.settings.ClusterPods,
			Utilization: cpu,
		}},
		Regions: []telemetrics.Region{{
			Name:    s.settings.RegionName,
			Traffic: s.settings.RegionTraffic,
		}},
		Timestamp: s.now().UTC(),
	}

	snap.Services, snap.Alerts = s.dependencies()

	metrics.ObserveSnapshot(snap.Metrics)

	return snap
}

func (s *Sampler) dependencies() ([]telemetrics.Service, []telemetrics.Alert) {
	name := s.datastore.Name()
	status := ServiceStatus(s.datastore.State())

	latency := s.settings.DegradedLatency
	if status == telemetrics.StatusOperational {
		latency = s.settings.OperationalLatency
	}

	services := []telemetrics.Service{
		{Name: s.settings.APIServiceName, Status: telemetrics.StatusOperational, Latency: s.settings.APILatency},
		{Name: name, Status: status, Latency: latency},
	}

	alerts := []telemetrics.Alert{}
	if status == telemetrics.StatusDown {
		alerts = append(alerts, telemetrics.Alert{
			Severity: telemetrics.SeverityCritical,
			Title:    fmt.Sprintf("%s down", name),
			Detail:   datastoreDownDetail,
		})
	}

	return services, alerts
}
