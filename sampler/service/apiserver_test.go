package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/sampler/config"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-logs")
	if err != nil {
		panic(err)
	}
	if _, err := logi.NewLog(&logi.Config{LogDir: dir}); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type stubSampler struct {
	snap  telemetrics.Snapshot
	calls int
}

func (s *stubSampler) Sample() telemetrics.Snapshot {
	s.calls++
	return s.snap
}

func newTestServer(snap telemetrics.Snapshot) (*APIServer, *stubSampler) {
	stub := &stubSampler{snap: snap}
	return NewAPIServer(config.NewConfig(), stub), stub
}

func serve(api *APIServer, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthHandler(t *testing.T) {
	api, _ := newTestServer(telemetrics.Snapshot{})

	rec := serve(api, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"Backend running"}`, rec.Body.String())
}

func TestDataHandler(t *testing.T) {
	api, _ := newTestServer(telemetrics.Snapshot{})

	rec := serve(api, http.MethodGet, "/api/data")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello from Kubernetes Backend"}`, rec.Body.String())
}

func TestSnapshotHandler_BothPaths(t *testing.T) {
	snap := telemetrics.Snapshot{
		Metrics:   []telemetrics.Metric{{Key: "cpu", Label: "CPU Utilization", Unit: "%", Value: 12.5}},
		Services:  []telemetrics.Service{{Name: "Redis", Status: telemetrics.StatusDown, Latency: 180}},
		Alerts:    []telemetrics.Alert{{Severity: telemetrics.SeverityCritical, Title: "Redis down", Detail: "Database connection is not healthy"}},
		Timestamp: time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC),
	}
	api, stub := newTestServer(snap)

	for _, path := range []string{"/api/metrics", "/metrics-snapshot"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(api, http.MethodGet, path)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got telemetrics.Snapshot
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, snap.Metrics, got.Metrics)
			assert.Equal(t, snap.Services, got.Services)
			assert.Equal(t, snap.Alerts, got.Alerts)
			assert.True(t, snap.Timestamp.Equal(got.Timestamp))
			assert.Contains(t, rec.Body.String(), `"clusters":[]`)
		})
	}
	assert.Equal(t, 2, stub.calls, "every request must sample afresh")
}

func TestCORS(t *testing.T) {
	api, stub := newTestServer(telemetrics.Snapshot{})

	rec := serve(api, http.MethodOptions, "/api/metrics")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Zero(t, stub.calls)

	rec = serve(api, http.MethodGet, "/api/metrics")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	api, _ := newTestServer(telemetrics.Snapshot{})

	rec := serve(api, http.MethodPost, "/api/metrics")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownPath(t *testing.T) {
	api, _ := newTestServer(telemetrics.Snapshot{})

	rec := serve(api, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrometheusEndpoint(t *testing.T) {
	api, _ := newTestServer(telemetrics.Snapshot{})

	serve(api, http.MethodGet, "/health")
	rec := serve(api, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "http_requests_total"), "expected request counter in exposition")
}

func TestShutdownWithoutStart(t *testing.T) {
	api, _ := newTestServer(telemetrics.Snapshot{})
	assert.NoError(t, api.Shutdown(context.Background()))
}

func newListeningServer() *APIServer {
	cfg := config.NewConfig()
	cfg.Port = 0
	return NewAPIServer(cfg, &stubSampler{})
}

func TestStartAfterShutdownReturnsImmediately(t *testing.T) {
	api := newListeningServer()
	require.NoError(t, api.Shutdown(context.Background()))

	done := make(chan error, 1)
	go func() { done <- api.Start() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start kept serving after Shutdown")
	}
}

// Start and Shutdown run on different goroutines in bootstrap; under -race
// this must stay clean whichever one wins.
func TestStartAndShutdownConcurrently(t *testing.T) {
	for i := 0; i < 20; i++ {
		api := newListeningServer()

		done := make(chan error, 1)
		go func() { done <- api.Start() }()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		require.NoError(t, api.Shutdown(ctx))
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Start did not return after Shutdown")
		}
	}
}
