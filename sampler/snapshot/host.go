package snapshot

import (
	"errors"
	"runtime"
	"time"
)

// ErrSensorUnavailable is returned by probes on platforms that cannot
// report a counter. The sampler substitutes a default.
var ErrSensorUnavailable = errors.New("sensor unavailable")

// HostProbe reads host-level counters.
type HostProbe interface {
	// LoadAverage1 returns the 1-minute load average.
	LoadAverage1() (float64, error)
	// NumCPU returns the logical core count; values below 1 are treated as 1.
	NumCPU() int
	// Memory returns total and free physical memory in bytes.
	Memory() (total, free uint64, err error)
	// Uptime returns host uptime.
	Uptime() (time.Duration, error)
}

// HeapProbe reads heap usage of the current process.
type HeapProbe interface {
	Heap() (used, allocated uint64)
}

type runtimeHeap struct{}

// NewHeapProbe returns a HeapProbe backed by runtime.ReadMemStats.
func NewHeapProbe() HeapProbe {
	return runtimeHeap{}
}

func (runtimeHeap) Heap() (uint64, uint64) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc, ms.HeapSys
}
