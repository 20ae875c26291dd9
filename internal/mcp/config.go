package mcp

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dshills/chemlab-mcp/internal/lab"
	"github.com/dshills/chemlab-mcp/internal/storage"
)

// Environment variables read by ConfigFromEnv
const (
	EnvDBPath          = "CHEMLAB_DB_PATH"
	EnvExperimentDelay = "CHEMLAB_EXPERIMENT_DELAY"
	EnvRemoteURL       = "CHEMLAB_REMOTE_URL"
	EnvMaxSessions     = "CHEMLAB_MAX_SESSIONS"
)

// Config holds server configuration
type Config struct {
	DBPath          string        // Experiment archive; storage.MemoryDSN keeps it in memory
	ExperimentDelay time.Duration // Simulated experiment duration
	RemoteURL       string        // Remote lookup base URL; empty disables find_reaction_remote
	MaxSessions     int           // Live lab sessions kept before LRU eviction
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		DBPath:          storage.MemoryDSN,
		ExperimentDelay: lab.DefaultExperimentDelay,
		MaxSessions:     lab.DefaultMaxSessions,
	}
}

// ConfigFromEnv overlays CHEMLAB_* environment variables on DefaultConfig
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvExperimentDelay); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("%s must be a non-negative duration, got %q", EnvExperimentDelay, v)
		}
		cfg.ExperimentDelay = d
	}
	cfg.RemoteURL = os.Getenv(EnvRemoteURL)
	if v := os.Getenv(EnvMaxSessions); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("%s must be a positive integer, got %q", EnvMaxSessions, v)
		}
		cfg.MaxSessions = n
	}

	return cfg, nil
}
