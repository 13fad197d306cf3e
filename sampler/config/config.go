package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yaron8/ops-dashboard/sampler/snapshot"
)

type Config struct {
	Port      int             `yaml:"port"`
	Greeting  string          `yaml:"greeting"`
	Datastore DatastoreConfig `yaml:"datastore"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Log       LogConfig       `yaml:"log"`
}

type DatastoreConfig struct {
	// URL selects the driver by scheme: redis://, rediss://, postgres://
	URL string `yaml:"url"`
	// Name overrides the display name derived from the scheme
	Name          string        `yaml:"name"`
	CheckInterval time.Duration `yaml:"checkInterval"`
	PingTimeout   time.Duration `yaml:"pingTimeout"`
}

// SnapshotConfig holds placeholder display values, not measurements
type SnapshotConfig struct {
	APIServiceName     string  `yaml:"apiServiceName"`
	APILatency         int     `yaml:"apiLatency"`
	OperationalLatency int     `yaml:"operationalLatency"`
	DegradedLatency    int     `yaml:"degradedLatency"`
	ClusterName        string  `yaml:"clusterName"`
	ClusterNodes       int     `yaml:"clusterNodes"`
	ClusterPods        int     `yaml:"clusterPods"`
	RegionName         string  `yaml:"regionName"`
	RegionTraffic      float64 `yaml:"regionTraffic"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

func defaultConfig() *Config {
	s := snapshot.DefaultSettings()

	return &Config{
		Port:     5000,
		Greeting: "Hello from Kubernetes Backend",
		Datastore: DatastoreConfig{
			URL:           "redis://localhost:6379/0",
			CheckInterval: 5 * time.Second,
			PingTimeout:   3 * time.Second,
		},
		Snapshot: SnapshotConfig{
			APIServiceName:     s.APIServiceName,
			APILatency:         s.APILatency,
			OperationalLatency: s.OperationalLatency,
			DegradedLatency:    s.DegradedLatency,
			ClusterName:        s.ClusterName,
			ClusterNodes:       s.ClusterNodes,
			ClusterPods:        s.ClusterPods,
			RegionName:         s.RegionName,
			RegionTraffic:      s.RegionTraffic,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NewConfig returns the defaults with environment overrides applied.
func NewConfig() *Config {
	cfg := defaultConfig()
	cfg.applyEnv()
	return cfg
}

// Load reads an optional YAML file on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Port = p
		}
	}

	if url := os.Getenv("DATASTORE_URL"); url != "" {
		c.Datastore.URL = url
	}

	if name := os.Getenv("DATASTORE_NAME"); name != "" {
		c.Datastore.Name = name
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if dir := os.Getenv("LOG_DIR"); dir != "" {
		c.Log.Dir = dir
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Datastore.URL == "" {
		return fmt.Errorf("datastore url is required")
	}
	if c.Datastore.CheckInterval <= 0 {
		return fmt.Errorf("datastore checkInterval must be positive")
	}
	if c.Datastore.PingTimeout <= 0 {
		return fmt.Errorf("datastore pingTimeout must be positive")
	}
	return nil
}

// SnapshotSettings converts the snapshot section for the sampler.
func (c *Config) SnapshotSettings() snapshot.Settings {
	return snapshot.Settings{
		APIServiceName:     c.Snapshot.APIServiceName,
		APILatency:         c.Snapshot.APILatency,
		OperationalLatency: c.Snapshot.OperationalLatency,
		DegradedLatency:    c.Snapshot.DegradedLatency,
		ClusterName:        c.Snapshot.ClusterName,
		ClusterNodes:       c.Snapshot.ClusterNodes,
		ClusterPods:        c.Snapshot.ClusterPods,
		RegionName:         c.Snapshot.RegionName,
		RegionTraffic:      c.Snapshot.RegionTraffic,
	}
}
