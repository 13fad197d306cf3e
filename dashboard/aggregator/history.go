package aggregator

import (
	"math"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

const (
	// HistoryPoints is the fixed rolling window length per metric.
	HistoryPoints = 28

	HistoryMin = 0
	HistoryMax = 400

	// Bars never collapse below BarMin percent height.
	BarMin = 5
	BarMax = 100
)

// Series is a metric with its client-side rolling history, oldest first.
type Series struct {
	telemetrics.Metric
	History []float64 `json:"history"`
}

// Merge folds a freshly fetched metric list into the previous series.
// Entries are matched by key; output order follows incoming. A known key
// gets its value appended and the window trimmed from the front; a new key
// is seeded with HistoryPoints copies of its first value. Keys missing from
// incoming are dropped. previous is never modified.
func Merge(previous []Series, incoming []telemetrics.Metric) []Series {
	byKey := make(map[string]*Series, len(previous))
	for i := range previous {
		byKey[previous[i].Key] = &previous[i]
	}

	merged := make([]Series, 0, len(incoming))
	for _, m := range incoming {
		var history []float64
		if prev, ok := byKey[m.Key]; ok {
			history = appendAndTrim(prev.History, m.Value)
		} else {
			history = seed(m.Value)
		}

		for i, point := range history {
			history[i] = ClampPoint(point)
		}

		merged = append(merged, Series{Metric: m, History: history})
	}

	return merged
}

// appendAndTrim returns a new slice holding the last HistoryPoints-1 points
// of history followed by value.
func appendAndTrim(history []float64, value float64) []float64 {
	keep := history
	if len(keep) > HistoryPoints-1 {
		keep = keep[len(keep)-(HistoryPoints-1):]
	}

	out := make([]float64, 0, HistoryPoints)
	out = append(out, keep...)
	return append(out, value)
}

func seed(value float64) []float64 {
	out := make([]float64, HistoryPoints)
	for i := range out {
		out[i] = value
	}
	return out
}

// ClampPoint bounds a history point to [HistoryMin, HistoryMax]. NaN becomes HistoryMin.
func ClampPoint(v float64) float64 {
	return clamp(v, HistoryMin, HistoryMax)
}

// BarHeight converts a history point into a bar height percentage in [BarMin, BarMax].
func BarHeight(v float64) float64 {
	return clamp(v, BarMin, BarMax)
}

// Progress is the fill percentage of a metric's progress bar. Latencies
// are scaled so 400 ms fills the bar.
func Progress(m telemetrics.Metric) float64 {
	if m.Unit == telemetrics.UnitMillis {
		return clamp(m.Value/4, 0, 100)
	}
	return clamp(m.Value, 0, 100)
}

// IsWarning reports whether a percentage metric is above 80.
func IsWarning(m telemetrics.Metric) bool {
	return m.Unit == telemetrics.UnitPercent && m.Value > 80
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}

// Stats summarises a history window.
type Stats struct {
	Min float64
	Max float64
	Avg float64
}

func ComputeStats(history []float64) Stats {
	if len(history) == 0 {
		return Stats{}
	}

	s := Stats{Min: history[0], Max: history[0]}
	var sum float64
	for _, v := range history {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Avg = sum / float64(len(history))
	return s
}
