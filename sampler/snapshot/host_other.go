//go:build !linux

package snapshot

import (
	"runtime"
	"time"
)

// portableHost only knows the core count; everything else is defaulted
// by the sampler.
type portableHost struct{}

// NewHostProbe returns a probe for platforms without /proc and sysinfo(2).
func NewHostProbe() HostProbe {
	return portableHost{}
}

func (portableHost) LoadAverage1() (float64, error) {
	return 0, ErrSensorUnavailable
}

func (portableHost) NumCPU() int {
	return runtime.NumCPU()
}

func (portableHost) Memory() (uint64, uint64, error) {
	return 0, 0, ErrSensorUnavailable
}

func (portableHost) Uptime() (time.Duration, error) {
	return 0, ErrSensorUnavailable
}
