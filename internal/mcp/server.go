package mcp

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/chemlab-mcp/internal/catalog"
	"github.com/dshills/chemlab-mcp/internal/lab"
	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/internal/remote"
	"github.com/dshills/chemlab-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "chemlab-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	catalog  *catalog.Catalog
	matcher  *reaction.Matcher
	storage  storage.Storage
	sessions *lab.Registry
	remote   *remote.Client // Nil when no remote URL is configured
	delay    time.Duration
}

// NewServer creates a new MCP server instance
func NewServer(cfg Config) (*Server, error) {
	// Initialize storage
	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Create remote client
	var rc *remote.Client
	if cfg.RemoteURL != "" {
		rc, err = remote.NewClient(remote.Config{
			BaseURL:   cfg.RemoteURL,
			Retry:     remote.DefaultRetryConfig(),
			CacheSize: remote.DefaultCacheSize,
		})
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to initialize remote lookup: %w", err)
		}
	}

	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		catalog:  catalog.Default(),
		matcher:  reaction.Default(),
		storage:  store,
		sessions: lab.NewRegistry(cfg.MaxSessions, store),
		remote:   rc,
		delay:    cfg.ExperimentDelay,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.Close() }()
	log.Printf("%s %s serving on stdio (remote lookup enabled: %t)", ServerName, ServerVersion, s.remote != nil)
	return server.ServeStdio(s.mcp)
}

// Close cancels pending experiments and closes the archive
func (s *Server) Close() error {
	s.sessions.Close()
	return s.storage.Close()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	// Catalog
	s.mcp.AddTool(listElementsTool(), s.handleListElements)
	s.mcp.AddTool(getElementTool(), s.handleGetElement)

	// Matching
	s.mcp.AddTool(matchReactionTool(), s.handleMatchReaction)

	// Lab session
	s.mcp.AddTool(addElementTool(), s.handleAddElement)
	s.mcp.AddTool(removeElementTool(), s.handleRemoveElement)
	s.mcp.AddTool(clearLabTool(), s.handleClearLab)
	s.mcp.AddTool(runExperimentTool(), s.handleRunExperiment)
	s.mcp.AddTool(getLabTool(), s.handleGetLab)
	s.mcp.AddTool(getHistoryTool(), s.handleGetHistory)

	// Analysis and presentation
	s.mcp.AddTool(analyzeSelectionTool(), s.handleAnalyzeSelection)
	s.mcp.AddTool(describeMoleculeTool(), s.handleDescribeMolecule)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	// Only offered when a remote service is configured
	if s.remote != nil {
		s.mcp.AddTool(findReactionRemoteTool(), s.handleFindReactionRemote)
	}

	return nil
}
