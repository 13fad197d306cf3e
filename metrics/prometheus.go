package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

var (
	TotalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of active HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	SnapshotsServed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshots_served_total",
			Help: "Total number of metric snapshots sampled and served",
		},
	)

	SampleValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sampled_metric_value",
			Help: "Last sampled value per snapshot metric key",
		},
		[]string{"key", "unit"},
	)

	DatastoreState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "datastore_connection_state",
			Help: "Datastore connection state (0 disconnected, 1 connected, 2 connecting, 3 disconnecting)",
		},
	)
)

func init() {
	prometheus.MustRegister(TotalRequests)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ActiveRequests)
	prometheus.MustRegister(SnapshotsServed)
	prometheus.MustRegister(SampleValue)
	prometheus.MustRegister(DatastoreState)
}

// MetricsMiddleware records request count, duration and in-flight gauges.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ActiveRequests.WithLabelValues(r.Method, r.URL.Path).Inc()

		rw := &responseWriter{w, http.StatusOK}

		next.ServeHTTP(rw, r)

		ActiveRequests.WithLabelValues(r.Method, r.URL.Path).Dec()

		duration := time.Since(start).Seconds()
		RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
		TotalRequests.WithLabelValues(r.Method, r.URL.Path, http.StatusText(rw.status)).Inc()
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// ObserveSnapshot publishes every metric of a freshly sampled snapshot.
func ObserveSnapshot(sampled []telemetrics.Metric) {
	SnapshotsServed.Inc()
	for _, m := range sampled {
		SampleValue.WithLabelValues(m.Key, m.Unit).Set(m.Value)
	}
}

func SetDatastoreState(state int) {
	DatastoreState.Set(float64(state))
}
