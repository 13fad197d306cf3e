package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	// APIBase is where the sampler endpoints are reached
	APIBase string `yaml:"apiBase"`
	Theme   string `yaml:"theme"`
	// Stats are placeholder tiles on the overview tab, not telemetry
	Stats []StatTile `yaml:"stats"`
	Log   LogConfig  `yaml:"log"`
}

type StatTile struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Trend string `yaml:"trend"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

func defaultConfig() *Config {
	return &Config{
		APIBase: "http://localhost:5000",
		Theme:   ThemeDark,
		Stats: []StatTile{
			{Label: "Requests/sec", Value: "842", Trend: "+12%"},
			{Label: "Active Users", Value: "1.2k", Trend: "+5%"},
			{Label: "Response Time", Value: "145ms", Trend: "-8%"},
			{Label: "Success Rate", Value: "99.8%", Trend: "+0.2%"},
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
	if base := os.Getenv("API_BASE"); base != "" {
		c.APIBase = base
	}

	if theme := os.Getenv("THEME"); theme != "" {
		c.Theme = strings.ToLower(theme)
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if dir := os.Getenv("LOG_DIR"); dir != "" {
		c.Log.Dir = dir
	}
}

func (c *Config) validate() error {
	if c.APIBase == "" {
		return fmt.Errorf("apiBase is required")
	}
	if !strings.HasPrefix(c.APIBase, "http://") && !strings.HasPrefix(c.APIBase, "https://") {
		return fmt.Errorf("apiBase must be an http(s) URL, got %q", c.APIBase)
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}
