package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dshills/chemlab-mcp/internal/lab"
	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/internal/remote"
	"github.com/dshills/chemlab-mcp/internal/storage"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

type handlerFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolsTestSuite exercises the tool handlers against an in-memory server
type ToolsTestSuite struct {
	suite.Suite
	ctx    context.Context
	server *Server
}

func (s *ToolsTestSuite) SetupTest() {
	s.ctx = context.Background()

	srv, err := NewServer(Config{
		DBPath:          storage.MemoryDSN,
		ExperimentDelay: 10 * time.Millisecond,
		MaxSessions:     4,
	})
	s.Require().NoError(err)
	s.server = srv
}

func (s *ToolsTestSuite) TearDownTest() {
	if s.server != nil {
		_ = s.server.Close()
	}
}

func request(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// call invokes a handler and decodes its JSON text result
func (s *ToolsTestSuite) call(h handlerFunc, args map[string]interface{}) map[string]interface{} {
	s.T().Helper()

	result, err := h(s.ctx, request("test", args))
	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Require().NotEmpty(result.Content)

	text, ok := mcp.AsTextContent(result.Content[0])
	s.Require().True(ok, "result should be text content")

	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal([]byte(text.Text), &out))
	return out
}

// callErr invokes a handler that must fail and returns its error code
func (s *ToolsTestSuite) callErr(h handlerFunc, args map[string]interface{}) int {
	s.T().Helper()

	_, err := h(s.ctx, request("test", args))
	s.Require().Error(err)

	var mcpErr *MCPError
	s.Require().True(errors.As(err, &mcpErr), "expected MCPError, got %v", err)
	return mcpErr.Code
}

func (s *ToolsTestSuite) stage(session string, symbols ...string) {
	for _, sym := range symbols {
		out := s.call(s.server.handleAddElement, map[string]interface{}{"symbol": sym, "session": session})
		s.Require().Equal(true, out["added"], "add %s", sym)
	}
}

func (s *ToolsTestSuite) TestListElements() {
	out := s.call(s.server.handleListElements, nil)
	s.Equal(float64(24), out["count"])

	elements := out["elements"].([]interface{})
	first := elements[0].(map[string]interface{})
	s.Equal("H", first["symbol"])
	s.Equal("1.008", first["atomic_mass"])

	out = s.call(s.server.handleListElements, map[string]interface{}{"category": "halogen"})
	s.Equal(float64(3), out["count"])

	out = s.call(s.server.handleListElements, map[string]interface{}{"period": float64(1)})
	s.Equal(float64(2), out["count"])

	code := s.callErr(s.server.handleListElements, map[string]interface{}{"category": "gas"})
	s.Equal(ErrorCodeInvalidParams, code)
}

func (s *ToolsTestSuite) TestGetElement() {
	out := s.call(s.server.handleGetElement, map[string]interface{}{"symbol": "na"})
	s.Equal("Na", out["symbol"])
	s.Equal("Sodium", out["name"])
	s.Equal("22.990", out["atomic_mass"])
	s.Equal("#ef4444", out["color"])
	s.NotEmpty(out["electron_configuration"])
	s.Contains(out, "trends")

	out = s.call(s.server.handleGetElement, map[string]interface{}{"symbol": "Ne"})
	s.NotContains(out, "electronegativity")

	s.Equal(ErrorCodeUnknownElement, s.callErr(s.server.handleGetElement, map[string]interface{}{"symbol": "Xx"}))
	s.Equal(ErrorCodeInvalidParams, s.callErr(s.server.handleGetElement, map[string]interface{}{}))
}

func (s *ToolsTestSuite) TestMatchReactionExplicit() {
	out := s.call(s.server.handleMatchReaction, map[string]interface{}{
		"symbols": []interface{}{"Cl", "Na"},
	})
	s.Equal(true, out["found"])
	rx := out["reaction"].(map[string]interface{})
	s.Equal("2Na + Cl2 → 2NaCl", rx["equation"])
	s.Equal("exothermic", rx["energy"])
	s.Equal("2Na + Cl₂ → 2NaCl", out["display_equation"])
	s.Equal([]interface{}{"NaCl"}, out["display_products"])
	s.Contains(out, "molecule")

	out = s.call(s.server.handleMatchReaction, map[string]interface{}{
		"symbols": []interface{}{"Fe", "Cu"},
	})
	s.Equal(false, out["found"])
	s.Equal(types.NoReactionSummary, out["summary"])
	s.NotContains(out, "reaction")

	s.Equal(ErrorCodeUnknownElement, s.callErr(s.server.handleMatchReaction, map[string]interface{}{
		"symbols": []interface{}{"Na", "Qq"},
	}))
	s.Equal(ErrorCodeInvalidParams, s.callErr(s.server.handleMatchReaction, map[string]interface{}{
		"symbols": []interface{}{"Na", 3},
	}))
	s.Equal(ErrorCodeInvalidParams, s.callErr(s.server.handleMatchReaction, map[string]interface{}{
		"symbols": []interface{}{"H", "He", "Li", "Be", "B", "C"},
	}))

	// Explicit matches leave the session alone
	s.Empty(s.server.sessions.Get(lab.DefaultSessionID).History())
}

func (s *ToolsTestSuite) TestMatchReactionSession() {
	s.Equal(ErrorCodeEmptySelection, s.callErr(s.server.handleMatchReaction, nil))

	s.stage("", "O", "H")
	out := s.call(s.server.handleMatchReaction, nil)
	s.Equal(true, out["found"])
	s.Equal(lab.DefaultSessionID, out["session"])
	s.NotEmpty(out["experiment_id"])
	s.Equal("2H₂ + O₂ → 2H₂O", out["display_equation"])
	s.Equal([]interface{}{"H₂O"}, out["display_products"])

	history := s.server.sessions.Get(lab.DefaultSessionID).History()
	s.Require().Len(history, 1)
	s.Equal("water-formation", history[0].Result.Reaction.ID)
}

func (s *ToolsTestSuite) TestAddElementCapacity() {
	s.stage("cap", "H", "He", "Li", "Be", "B")

	out := s.call(s.server.handleAddElement, map[string]interface{}{"symbol": "C", "session": "cap"})
	s.Equal(false, out["added"])
	s.Equal(float64(lab.MaxSelection), out["count"])
	s.Contains(out, "message")

	s.Equal(ErrorCodeUnknownElement, s.callErr(s.server.handleAddElement, map[string]interface{}{"symbol": "Zz"}))
}

func (s *ToolsTestSuite) TestRemoveInvalidatesResult() {
	s.stage("", "Na", "Cl")
	s.call(s.server.handleMatchReaction, nil)

	state := s.call(s.server.handleGetLab, nil)
	s.Require().Contains(state, "result")

	out := s.call(s.server.handleRemoveElement, map[string]interface{}{"symbol": "na"})
	s.Equal(true, out["removed"])
	s.Equal([]interface{}{"Cl"}, out["selection"])

	state = s.call(s.server.handleGetLab, nil)
	s.NotContains(state, "result")
	s.Len(state["history"], 1)

	out = s.call(s.server.handleRemoveElement, map[string]interface{}{"symbol": "Fe"})
	s.Equal(false, out["removed"])
}

func (s *ToolsTestSuite) TestClearLab() {
	s.stage("", "C", "O")
	out := s.call(s.server.handleClearLab, nil)
	s.Equal(true, out["cleared"])

	state := s.call(s.server.handleGetLab, nil)
	s.Equal(float64(0), state["count"])
}

func (s *ToolsTestSuite) TestRunExperiment() {
	s.stage("bench", "Na", "Cl")

	out := s.call(s.server.handleRunExperiment, map[string]interface{}{"session": "bench"})
	s.Equal(true, out["found"])
	s.Equal("bench", out["session"])
	s.Equal([]interface{}{"Na", "Cl"}, out["elements"])

	hist := s.call(s.server.handleGetHistory, map[string]interface{}{"session": "bench"})
	s.Equal(float64(1), hist["count"])
	entry := hist["experiments"].([]interface{})[0].(map[string]interface{})
	s.Equal("sodium-chloride", entry["reaction_id"])

	state := s.call(s.server.handleGetLab, map[string]interface{}{"session": "bench"})
	s.Equal(false, state["experimenting"])
	s.Contains(state, "result")
}

func (s *ToolsTestSuite) TestRunExperimentErrors() {
	s.Equal(ErrorCodeEmptySelection, s.callErr(s.server.handleRunExperiment, nil))

	s.stage("", "H")
	s.Equal(ErrorCodeRemoteDisabled, s.callErr(s.server.handleRunExperiment, map[string]interface{}{"source": "remote"}))
	s.Equal(ErrorCodeInvalidParams, s.callErr(s.server.handleRunExperiment, map[string]interface{}{"source": "oracle"}))
}

func (s *ToolsTestSuite) TestRunExperimentAbandoned() {
	s.server.delay = 500 * time.Millisecond
	s.stage("slow", "H", "O")

	var (
		wg   sync.WaitGroup
		code int
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.server.handleRunExperiment(s.ctx, request("run_experiment", map[string]interface{}{"session": "slow"}))
		var mcpErr *MCPError
		if errors.As(err, &mcpErr) {
			code = mcpErr.Code
		}
	}()

	sess := s.server.sessions.Get("slow")
	s.Require().Eventually(sess.Experimenting, time.Second, 5*time.Millisecond)

	s.Equal(ErrorCodeExperimentRunning, s.callErr(s.server.handleRunExperiment, map[string]interface{}{"session": "slow"}))

	s.call(s.server.handleRemoveElement, map[string]interface{}{"symbol": "O", "session": "slow"})
	wg.Wait()

	s.Equal(ErrorCodeExperimentAbandoned, code)
	s.Empty(sess.History())
}

func (s *ToolsTestSuite) TestSessionsAreIndependent() {
	s.stage("a", "Na")
	s.stage("b", "Cl", "H")

	a := s.call(s.server.handleGetLab, map[string]interface{}{"session": "a"})
	b := s.call(s.server.handleGetLab, map[string]interface{}{"session": "b"})
	s.Equal(float64(1), a["count"])
	s.Equal(float64(2), b["count"])
}

func (s *ToolsTestSuite) TestGetHistoryFilters() {
	s.stage("x", "H", "O")
	s.call(s.server.handleRunExperiment, map[string]interface{}{"session": "x"})
	s.call(s.server.handleClearLab, map[string]interface{}{"session": "x"})
	s.stage("x", "Fe", "Cu")
	s.call(s.server.handleRunExperiment, map[string]interface{}{"session": "x"})
	s.stage("y", "C", "O")
	s.call(s.server.handleRunExperiment, map[string]interface{}{"session": "y"})

	out := s.call(s.server.handleGetHistory, map[string]interface{}{"session": "x"})
	s.Equal(float64(2), out["count"])

	out = s.call(s.server.handleGetHistory, map[string]interface{}{"all_sessions": true})
	s.Equal(float64(3), out["count"])

	out = s.call(s.server.handleGetHistory, map[string]interface{}{"all_sessions": true, "symbol": "o"})
	s.Equal(float64(2), out["count"])

	out = s.call(s.server.handleGetHistory, map[string]interface{}{"session": "x", "matched": false})
	s.Equal(float64(1), out["count"])

	out = s.call(s.server.handleGetHistory, map[string]interface{}{"all_sessions": true, "limit": float64(1)})
	s.Equal(float64(1), out["count"])

	s.Equal(ErrorCodeInvalidParams, s.callErr(s.server.handleGetHistory, map[string]interface{}{"limit": float64(0)}))
	s.Equal(ErrorCodeInvalidParams, s.callErr(s.server.handleGetHistory, map[string]interface{}{"limit": float64(101)}))
}

func (s *ToolsTestSuite) TestAnalyzeSelection() {
	out := s.call(s.server.handleAnalyzeSelection, map[string]interface{}{
		"symbols": []interface{}{"Na", "Cl"},
	})
	s.Equal("58.443", out["molecular_weight"])
	s.Equal(true, out["known_reaction"])

	bonds := out["bonds"].([]interface{})
	s.Require().Len(bonds, 1)
	s.Equal("ionic", bonds[0].(map[string]interface{})["type"])

	s.Equal(ErrorCodeEmptySelection, s.callErr(s.server.handleAnalyzeSelection, nil))

	s.stage("", "H", "H")
	out = s.call(s.server.handleAnalyzeSelection, nil)
	s.Empty(out["bonds"])
}

func (s *ToolsTestSuite) TestDescribeMolecule() {
	out := s.call(s.server.handleDescribeMolecule, map[string]interface{}{"formula": "H2O"})
	mol := out["molecule"].(map[string]interface{})
	s.Equal("water", mol["shape"])
	s.Len(mol["atoms"], 3)

	out = s.call(s.server.handleDescribeMolecule, nil)
	s.Equal("selection", out["source"])
	s.Empty(out["atoms"])

	s.stage("", "H", "Cl")
	s.call(s.server.handleMatchReaction, nil)
	out = s.call(s.server.handleDescribeMolecule, nil)
	s.Equal("reaction", out["source"])
	s.Equal("hydrogen-chloride", out["molecule"].(map[string]interface{})["shape"])
}

func (s *ToolsTestSuite) TestGetStatus() {
	s.stage("", "H", "O")
	s.call(s.server.handleRunExperiment, nil)

	out := s.call(s.server.handleGetStatus, nil)
	s.Equal(ServerName, out["server"])
	s.Equal(float64(24), out["elements"])
	s.Equal(float64(reaction.Default().Len()), out["reactions"])
	s.Equal(false, out["remote_lookup"])
	s.Equal(float64(1), out["live_sessions"])

	archive := out["archive"].(map[string]interface{})
	s.Equal(float64(1), archive["total_experiments"])
	s.Equal(float64(1), archive["matched"])

	health := out["health"].(map[string]interface{})
	s.Equal(true, health["database_accessible"])
	s.Equal(storage.CurrentSchemaVersion, health["schema_version"])
}

func (s *ToolsTestSuite) TestFindReactionRemoteDisabled() {
	s.Equal(ErrorCodeRemoteDisabled, s.callErr(s.server.handleFindReactionRemote, map[string]interface{}{
		"symbols": []interface{}{"H", "O"},
	}))
}

func TestToolsTestSuite(t *testing.T) {
	suite.Run(t, new(ToolsTestSuite))
}

func TestRemoteTools(t *testing.T) {
	api := httptest.NewServer(remote.NewHandler(reaction.Default()))
	defer api.Close()

	srv, err := NewServer(Config{
		DBPath:          storage.MemoryDSN,
		ExperimentDelay: time.Millisecond,
		RemoteURL:       api.URL,
	})
	require.NoError(t, err)
	defer srv.Close()

	ctx := context.Background()

	result, err := srv.handleFindReactionRemote(ctx, request("find_reaction_remote", map[string]interface{}{
		"symbols": []interface{}{"N", "H"},
	}))
	require.NoError(t, err)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "ammonia-synthesis")
	assert.Contains(t, text.Text, remote.FindPath)

	_, err = srv.handleFindReactionRemote(ctx, request("find_reaction_remote", map[string]interface{}{}))
	require.Error(t, err)

	sess := srv.sessions.Get("")
	sess.Add(mustElement(t, srv, "Zn"))
	sess.Add(mustElement(t, srv, "H"))
	sess.Add(mustElement(t, srv, "Cl"))

	result, err = srv.handleRunExperiment(ctx, request("run_experiment", map[string]interface{}{"source": "remote"}))
	require.NoError(t, err)
	text, ok = mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "zinc-hydrochloric")
}

func mustElement(t *testing.T, srv *Server, symbol string) types.Element {
	t.Helper()
	el, err := srv.catalog.Lookup(symbol)
	require.NoError(t, err)
	return el
}

func TestNewServerRejectsBadRemote(t *testing.T) {
	_, err := NewServer(Config{DBPath: storage.MemoryDSN, RemoteURL: "::not a url"})
	assert.Error(t, err)
}
