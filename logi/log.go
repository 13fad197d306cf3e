package logi

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultLogDir is tried first; ./logs is used when it is not writable.
const DefaultLogDir = "/var/log/ops-dashboard"

var (
	logger *slog.Logger
	once   sync.Once
)

// Config selects where one binary writes its log.
type Config struct {
	// App names the binary ("sampler", "dashboard"). It becomes the "app"
	// attribute on every record and the default file name.
	App string
	// LogDir defaults to DefaultLogDir, or ./logs if that is not writable.
	LogDir string
	// LogFileName defaults to "<App>.log", or ops-dashboard.log without App.
	LogFileName string
	// Level is the minimum level written.
	Level slog.Level
}

func (c *Config) fileName() string {
	switch {
	case c.LogFileName != "":
		return c.LogFileName
	case c.App != "":
		return c.App + ".log"
	default:
		return "ops-dashboard.log"
	}
}

// NewLog creates the process-wide logger on first call and returns it on
// every later call, ignoring cfg. Records are JSON lines in a file, which
// keeps the terminal free for the dashboard UI.
func NewLog(cfg *Config) (*slog.Logger, error) {
	var initErr error

	once.Do(func() {
		if cfg == nil {
			cfg = &Config{}
		}

		dir := cfg.LogDir
		if dir == "" {
			dir = DefaultLogDir
			if !isDirWritable(dir) {
				dir = "./logs"
			}
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create log directory %s: %w", dir, err)
			return
		}

		logPath := filepath.Join(dir, cfg.fileName())

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			initErr = fmt.Errorf("failed to open log file %s: %w", logPath, err)
			return
		}

		l := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: cfg.Level}))
		if cfg.App != "" {
			l = l.With("app", cfg.App)
		}
		logger = l

		logger.Info("logger initialized",
			"log_path", logPath,
			"level", cfg.Level.String(),
		)
	})

	if initErr != nil {
		return nil, initErr
	}

	return logger, nil
}

// GetLogger returns the logger built by NewLog and panics before that.
func GetLogger() *slog.Logger {
	if logger == nil {
		panic("logger not initialized - call NewLog first")
	}
	return logger
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog.Level.
// Unknown or empty names fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isDirWritable(path string) bool {
	if err := os.MkdirAll(path, 0755); err != nil {
		return false
	}

	f, err := os.CreateTemp(path, ".write_test")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
