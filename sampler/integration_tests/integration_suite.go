package integration_tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yaron8/ops-dashboard/logi"
	"github.com/yaron8/ops-dashboard/sampler/config"
	"github.com/yaron8/ops-dashboard/sampler/datastore"
	"github.com/yaron8/ops-dashboard/sampler/service"
	"github.com/yaron8/ops-dashboard/sampler/snapshot"
)

// unreachableRedisURL points at a port nothing listens on, so the real
// Redis driver fails every ping.
const unreachableRedisURL = "redis://127.0.0.1:1/0"

type IntegrationTestSuite struct {
	suite.Suite
	logDir  string
	manager *datastore.Manager
	server  *httptest.Server
	client  *http.Client
	ctx     context.Context
	cancel  context.CancelFunc
}

// SetupSuite runs once before all tests in the suite
func (s *IntegrationTestSuite) SetupSuite() {
	var err error
	s.logDir, err = os.MkdirTemp("", "sampler-integration-logs")
	s.Require().NoError(err)

	_, err = logi.NewLog(&logi.Config{LogDir: s.logDir})
	s.Require().NoError(err)

	cfg := config.NewConfig()
	cfg.Datastore.URL = unreachableRedisURL

	pinger, name, err := datastore.NewPinger(cfg.Datastore.URL)
	s.Require().NoError(err, "Failed to create datastore driver")

	// Only the initial probe runs; a reconnect attempt would report degraded.
	s.manager = datastore.NewManager(pinger, name, time.Hour, 2*time.Second)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	go s.manager.Run(s.ctx)

	sampler := snapshot.NewSampler(s.manager, snapshot.NewHostProbe(), snapshot.NewHeapProbe(), cfg.SnapshotSettings())
	api := service.NewAPIServer(cfg, sampler)

	s.server = httptest.NewServer(api.Handler())
	s.client = &http.Client{Timeout: 5 * time.Second}

	s.T().Log("Waiting for the datastore manager to report the outage...")
	s.Require().Eventually(func() bool {
		return s.manager.State() == datastore.Disconnected
	}, 10*time.Second, 20*time.Millisecond, "datastore never reported disconnected")
}

// TearDownSuite runs once after all tests in the suite
func (s *IntegrationTestSuite) TearDownSuite() {
	s.server.Close()
	s.cancel()
	s.Require().NoError(s.manager.Close())
	os.RemoveAll(s.logDir)
}
