//go:build linux

package snapshot

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// sysinfo load averages are fixed-point with 16 fractional bits
const loadScale = 1 << 16

// procHost reads /proc/loadavg, /proc/meminfo and sysinfo(2).
type procHost struct {
	// Overridable for testing.
	readLoadavg func() ([]byte, error)
	readMeminfo func() ([]byte, error)
	sysinfo     func(info *unix.Sysinfo_t) error
	numCPU      func() int
}

// NewHostProbe returns the Linux host probe.
func NewHostProbe() HostProbe {
	return &procHost{
		readLoadavg: func() ([]byte, error) {
			return os.ReadFile("/proc/loadavg")
		},
		readMeminfo: func() ([]byte, error) {
			return os.ReadFile("/proc/meminfo")
		},
		sysinfo: unix.Sysinfo,
		numCPU:  runtime.NumCPU,
	}
}

func (h *procHost) LoadAverage1() (float64, error) {
	data, err := h.readLoadavg()
	if err == nil {
		fields := strings.Fields(string(data))
		if len(fields) > 0 {
			if load, perr := strconv.ParseFloat(fields[0], 64); perr == nil {
				return load, nil
			}
		}
	}

	// /proc unavailable (some sandboxes): fall back to sysinfo.
	var info unix.Sysinfo_t
	if serr := h.sysinfo(&info); serr != nil {
		return 0, fmt.Errorf("reading load average: %w", ErrSensorUnavailable)
	}
	return float64(info.Loads[0]) / loadScale, nil
}

func (h *procHost) NumCPU() int {
	return h.numCPU()
}

// Memory reports total and available bytes. Available is MemAvailable, so
// reclaimable page cache counts as free; sysinfo freeram is the fallback
// for kernels or sandboxes without it.
func (h *procHost) Memory() (uint64, uint64, error) {
	if data, err := h.readMeminfo(); err == nil {
		if total, avail, ok := parseMeminfo(string(data)); ok {
			return total, avail, nil
		}
	}

	var info unix.Sysinfo_t
	if err := h.sysinfo(&info); err != nil {
		return 0, 0, fmt.Errorf("sysinfo: %w", err)
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return uint64(info.Totalram) * unit, uint64(info.Freeram) * unit, nil
}

func (h *procHost) Uptime() (time.Duration, error) {
	var info unix.Sysinfo_t
	if err := h.sysinfo(&info); err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}
	return time.Duration(info.Uptime) * time.Second, nil
}

// parseMeminfo extracts MemTotal and MemAvailable in bytes.
func parseMeminfo(content string) (total, avail uint64, ok bool) {
	var foundTotal, foundAvail bool

	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		var dst *uint64
		switch fields[0] {
		case "MemTotal:":
			dst, foundTotal = &total, true
		case "MemAvailable:":
			dst, foundAvail = &avail, true
		default:
			continue
		}

		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, 0, false
		}
		*dst = kb * 1024

		if foundTotal && foundAvail {
			break
		}
	}

	if !foundTotal || !foundAvail || total == 0 {
		return 0, 0, false
	}
	return total, avail, true
}
