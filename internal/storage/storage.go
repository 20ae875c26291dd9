package storage

import (
	"context"
	"time"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// MemoryDSN keeps the archive in memory for the lifetime of the process
const MemoryDSN = ":memory:"

// Storage is the experiment archive: an append-only log of every
// experiment recorded by any lab session
type Storage interface {
	// Experiment operations
	RecordExperiment(ctx context.Context, rec *types.ExperimentRecord) error
	GetExperiment(ctx context.Context, id string) (*types.ExperimentRecord, error)
	ListExperiments(ctx context.Context, filter ExperimentFilter) ([]*types.ExperimentRecord, error)

	// Status operations
	GetStats(ctx context.Context) (*ArchiveStats, error)

	// Database operations
	Close() error
}

// ExperimentFilter narrows ListExperiments. Zero-valued fields are ignored.
type ExperimentFilter struct {
	SessionID  string
	ReactionID string
	Symbol     string // Experiments whose selection contained this symbol
	Matched    *bool  // Only matches (true) or only misses (false)
	Since      time.Time
	Limit      int // Defaults to DefaultListLimit, capped at MaxListLimit
}

// List limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ArchiveStats summarizes the archive contents
type ArchiveStats struct {
	TotalExperiments int
	Matched          int
	Unmatched        int
	Sessions         int
	ByReaction       []ReactionCount // Most frequent first
	LastRecordedAt   time.Time       // Zero when empty
	Health           HealthStatus
}

// ReactionCount is how often one reaction was produced
type ReactionCount struct {
	ReactionID string
	Name       string
	Count      int
}

// HealthStatus represents the health of the archive
type HealthStatus struct {
	DatabaseAccessible bool
	SchemaVersion      string
}
