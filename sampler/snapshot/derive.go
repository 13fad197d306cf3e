package snapshot

import (
	"math"
	"time"

	"github.com/yaron8/ops-dashboard/sampler/datastore"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CPUPercent is the 1-minute load average per core as a percentage, capped at 100.
func CPUPercent(load1 float64, cores int) float64 {
	if cores < 1 {
		cores = 1
	}
	return math.Min(100, Round1(load1/float64(cores)*100))
}

// MemoryPercent returns used physical memory as a percentage of total.
func MemoryPercent(total, free uint64) float64 {
	if total == 0 {
		return 0
	}
	used := float64(total) - float64(free)
	return Round1(used / float64(total) * 100)
}

// HeapPercent returns heap in use as a percentage of heap obtained from the OS.
func HeapPercent(used, allocated uint64) float64 {
	if allocated == 0 {
		return 0
	}
	return Round1(float64(used) / float64(allocated) * 100)
}

func UptimeMinutes(d time.Duration) float64 {
	return Round1(d.Seconds() / 60)
}

// ServiceStatus maps a connection state to the reported service status.
func ServiceStatus(state datastore.State) telemetrics.ServiceStatus {
	switch state {
	case datastore.Connected:
		return telemetrics.StatusOperational
	case datastore.Connecting:
		return telemetrics.StatusDegraded
	default:
		return telemetrics.StatusDown
	}
}
