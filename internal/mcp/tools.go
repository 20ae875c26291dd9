package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/chemlab-mcp/internal/catalog"
	"github.com/dshills/chemlab-mcp/internal/lab"
	"github.com/dshills/chemlab-mcp/internal/molecule"
	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/internal/storage"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams       = -32602 // Invalid method parameters
	ErrorCodeInternalError       = -32603 // Internal JSON-RPC error
	ErrorCodeUnknownElement      = -32001 // Symbol is not in the catalog
	ErrorCodeExperimentRunning   = -32002 // Another experiment is already running in the session
	ErrorCodeEmptySelection      = -32003 // Nothing staged
	ErrorCodeExperimentAbandoned = -32004 // Selection changed or session closed before the result landed
	ErrorCodeRemoteDisabled      = -32005 // No remote lookup service configured
)

// Experiment sources
const (
	sourceLocal  = "local"
	sourceRemote = "remote"
)

// handleListElements handles the list_elements tool invocation
func (s *Server) handleListElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	var filter catalog.Filter
	if raw := getStringDefault(args, "category", ""); raw != "" {
		cat, err := types.ParseCategory(raw)
		if err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid category", map[string]interface{}{
				"param":   "category",
				"value":   raw,
				"allowed": categoryEnum(),
			})
		}
		filter.Category = cat
	}
	filter.Period = getIntDefault(args, "period", 0)
	filter.Group = getIntDefault(args, "group", 0)

	elements := s.catalog.List(filter)
	views := make([]map[string]interface{}, len(elements))
	for i := range elements {
		views[i] = elementView(elements[i])
	}

	response := map[string]interface{}{
		"count":    len(views),
		"elements": views,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetElement handles the get_element tool invocation
func (s *Server) handleGetElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	el, err := s.elementArg(args)
	if err != nil {
		return nil, err
	}

	response := elementView(el)
	response["electron_configuration"] = catalog.ElectronConfiguration(el.AtomicNumber)
	response["trends"] = catalog.PeriodicTrends(el)
	response["safety_warnings"] = catalog.SafetyWarnings([]types.Element{el})

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleMatchReaction handles the match_reaction tool invocation
func (s *Server) handleMatchReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	elements, given, err := s.elementsArg(args, "symbols")
	if err != nil {
		return nil, err
	}

	// Stateless match of explicit symbols
	if given {
		response := matchResponse(s.matcher.Match(symbolsOf(elements)))
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	sess := s.session(args)
	rec, err := sess.MatchNow(ctx, s.matcher)
	if err != nil {
		return nil, experimentError(sess, err)
	}

	response := matchResponse(rec.Result)
	response["session"] = sess.ID()
	response["experiment_id"] = rec.ID
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleAddElement handles the add_element tool invocation
func (s *Server) handleAddElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	el, err := s.elementArg(args)
	if err != nil {
		return nil, err
	}

	sess := s.session(args)
	added := sess.Add(el)
	symbols := sess.Symbols()

	response := map[string]interface{}{
		"session":   sess.ID(),
		"added":     added,
		"selection": symbols,
		"count":     len(symbols),
		"capacity":  lab.MaxSelection,
	}
	if !added {
		response["message"] = fmt.Sprintf("Selection is full (%d elements). Remove an element first.", lab.MaxSelection)
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleRemoveElement handles the remove_element tool invocation
func (s *Server) handleRemoveElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	symbol, err := requiredString(args, "symbol")
	if err != nil {
		return nil, err
	}
	if el, err := s.catalog.Lookup(symbol); err == nil {
		symbol = el.Symbol
	}

	sess := s.session(args)
	removed := sess.Remove(symbol)
	symbols := sess.Symbols()

	response := map[string]interface{}{
		"session":   sess.ID(),
		"removed":   removed,
		"selection": symbols,
		"count":     len(symbols),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleClearLab handles the clear_lab tool invocation
func (s *Server) handleClearLab(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	sess := s.session(args)
	sess.Clear()

	response := map[string]interface{}{
		"session": sess.ID(),
		"cleared": true,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleRunExperiment handles the run_experiment tool invocation
func (s *Server) handleRunExperiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	var m lab.Matcher = s.matcher
	switch source := getStringDefault(args, "source", sourceLocal); source {
	case sourceLocal:
	case sourceRemote:
		if s.remote == nil {
			return nil, newMCPError(ErrorCodeRemoteDisabled, "remote lookup is not configured", map[string]interface{}{
				"env": EnvRemoteURL,
			})
		}
		m = lab.ContextMatchFunc(s.remote.FindReaction)
	default:
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid source", map[string]interface{}{
			"param":   "source",
			"value":   source,
			"allowed": []string{sourceLocal, sourceRemote},
		})
	}

	sess := s.session(args)
	exp, err := sess.StartExperiment(ctx, m, s.delay)
	if err != nil {
		return nil, experimentError(sess, err)
	}

	rec, err := exp.Wait(ctx)
	if err != nil {
		return nil, experimentError(sess, err)
	}

	response := matchResponse(rec.Result)
	response["session"] = sess.ID()
	response["experiment_id"] = rec.ID
	response["elements"] = rec.Symbols()
	response["timestamp"] = rec.Timestamp.Format("2006-01-02T15:04:05Z07:00")
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetLab handles the get_lab tool invocation
func (s *Server) handleGetLab(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	snap := s.session(args).Snapshot()

	selection := make([]map[string]interface{}, len(snap.Selection))
	for i := range snap.Selection {
		selection[i] = elementView(snap.Selection[i])
	}

	response := map[string]interface{}{
		"session":       snap.ID,
		"version":       snap.Version,
		"selection":     selection,
		"count":         len(snap.Selection),
		"capacity":      lab.MaxSelection,
		"experimenting": snap.Experimenting,
		"history":       historyView(snap.History),
	}
	if snap.Result != nil {
		response["result"] = matchResponse(*snap.Result)
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetHistory handles the get_history tool invocation
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	limit := getIntDefault(args, "limit", storage.DefaultListLimit)
	if limit < 1 || limit > storage.MaxListLimit {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	filter := storage.ExperimentFilter{
		ReactionID: getStringDefault(args, "reaction_id", ""),
		Limit:      limit,
	}
	if !getBoolDefault(args, "all_sessions", false) {
		filter.SessionID = sessionID(args)
	}
	if symbol := getStringDefault(args, "symbol", ""); symbol != "" {
		el, err := s.lookupElement(symbol)
		if err != nil {
			return nil, err
		}
		filter.Symbol = el.Symbol
	}
	if matched, ok := args["matched"].(bool); ok {
		filter.Matched = &matched
	}

	records, err := s.storage.ListExperiments(ctx, filter)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list experiments", map[string]interface{}{
			"error": err.Error(),
		})
	}

	experiments := make([]map[string]interface{}, len(records))
	for i, rec := range records {
		experiments[i] = recordView(*rec)
	}

	response := map[string]interface{}{
		"count":       len(experiments),
		"experiments": experiments,
	}
	if filter.SessionID != "" {
		response["session"] = filter.SessionID
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleAnalyzeSelection handles the analyze_selection tool invocation
func (s *Server) handleAnalyzeSelection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	elements, given, err := s.elementsArg(args, "symbols")
	if err != nil {
		return nil, err
	}
	if !given {
		elements = s.session(args).Selection()
	}
	if len(elements) == 0 {
		return nil, newMCPError(ErrorCodeEmptySelection, "no elements to analyze", nil)
	}

	bonds := make([]map[string]interface{}, 0)
	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			a, b := elements[i], elements[j]
			if a.Symbol == b.Symbol {
				continue
			}
			bonds = append(bonds, map[string]interface{}{
				"elements":                     []string{a.Symbol, b.Symbol},
				"type":                         catalog.PredictBondType(a, b),
				"electronegativity_difference": catalog.ElectronegativityDifference(a, b),
			})
		}
	}

	symbols := symbolsOf(elements)
	prediction := s.matcher.Match(symbols)

	response := map[string]interface{}{
		"elements":         symbols,
		"molecular_weight": catalog.FormatAtomicMass(catalog.MolecularWeight(elements)),
		"reactivity":       catalog.PredictReactivity(elements),
		"safety_warnings":  catalog.SafetyWarnings(elements),
		"bonds":            bonds,
		"known_reaction":   prediction.Found(),
		"summary":          prediction.Summary(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDescribeMolecule handles the describe_molecule tool invocation
func (s *Server) handleDescribeMolecule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	if formula := strings.TrimSpace(getStringDefault(args, "formula", "")); formula != "" {
		d, err := molecule.DescribeFormula(formula)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to describe molecule", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{"molecule": d})), nil
	}

	sess := s.session(args)
	response := map[string]interface{}{
		"session": sess.ID(),
	}
	if result, ok := sess.Result(); ok {
		if d, found := molecule.ForResult(result); found {
			response["source"] = "reaction"
			response["molecule"] = d
			return mcp.NewToolResultText(formatJSON(response)), nil
		}
	}

	response["source"] = "selection"
	response["atoms"] = molecule.Layout(sess.Selection())
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.storage.GetStats(ctx)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	byReaction := make([]map[string]interface{}, len(stats.ByReaction))
	for i, rc := range stats.ByReaction {
		byReaction[i] = map[string]interface{}{
			"reaction_id": rc.ReactionID,
			"name":        rc.Name,
			"count":       rc.Count,
		}
	}

	archive := map[string]interface{}{
		"total_experiments": stats.TotalExperiments,
		"matched":           stats.Matched,
		"unmatched":         stats.Unmatched,
		"sessions":          stats.Sessions,
		"by_reaction":       byReaction,
	}
	if !stats.LastRecordedAt.IsZero() {
		archive["last_recorded_at"] = stats.LastRecordedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	response := map[string]interface{}{
		"server":        ServerName,
		"version":       ServerVersion,
		"live_sessions": s.sessions.Len(),
		"elements":      s.catalog.Len(),
		"reactions":     s.matcher.Len(),
		"remote_lookup": s.remote != nil,
		"archive":       archive,
		"health": map[string]interface{}{
			"database_accessible": stats.Health.DatabaseAccessible,
			"schema_version":      stats.Health.SchemaVersion,
		},
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleFindReactionRemote handles the find_reaction_remote tool invocation
func (s *Server) handleFindReactionRemote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.remote == nil {
		return nil, newMCPError(ErrorCodeRemoteDisabled, "remote lookup is not configured", nil)
	}

	args, err := arguments(request)
	if err != nil {
		return nil, err
	}

	symbols, ok, err := getStringSlice(args, "symbols")
	if err != nil {
		return nil, err
	}
	if !ok || len(symbols) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "symbols parameter is required", map[string]interface{}{
			"param":  "symbols",
			"reason": "missing or empty",
		})
	}

	response := matchResponse(s.remote.FindReaction(ctx, symbols))
	response["endpoint"] = s.remote.Endpoint()
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Response views

func elementView(el types.Element) map[string]interface{} {
	view := map[string]interface{}{
		"symbol":            el.Symbol,
		"name":              el.Name,
		"atomic_number":     el.AtomicNumber,
		"atomic_mass":       catalog.FormatAtomicMass(el.AtomicMass),
		"category":          el.Category,
		"valence_electrons": el.ValenceElectrons,
		"period":            el.Period,
		"group":             el.Group,
		"color":             molecule.CategoryColor(el.Category),
	}
	if el.HasElectronegativity() {
		view["electronegativity"] = *el.Electronegativity
	}
	return view
}

func matchResponse(res types.MatchResult) map[string]interface{} {
	response := map[string]interface{}{
		"found":   res.Found(),
		"summary": res.Summary(),
	}
	if !res.Found() {
		return response
	}

	response["reaction"] = res.Reaction
	response["display_equation"] = catalog.FormatFormula(res.Reaction.Equation)
	products := make([]string, len(res.Reaction.Products))
	for i, p := range res.Reaction.Products {
		products[i] = catalog.FormatFormula(p)
	}
	response["display_products"] = products
	response["conditions"] = reaction.Conditions(*res.Reaction)
	if d, ok := molecule.ForResult(res); ok {
		response["molecule"] = d
	}
	return response
}

func recordView(rec types.ExperimentRecord) map[string]interface{} {
	view := map[string]interface{}{
		"id":        rec.ID,
		"session":   rec.SessionID,
		"timestamp": rec.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		"elements":  rec.Symbols(),
		"found":     rec.Result.Found(),
		"summary":   rec.Summary,
	}
	if rec.Result.Found() {
		view["reaction_id"] = rec.Result.Reaction.ID
	}
	return view
}

func historyView(history []types.ExperimentRecord) []map[string]interface{} {
	out := make([]map[string]interface{}, len(history))
	for i := range history {
		out[i] = recordView(history[i])
	}
	return out
}

// Argument resolution

func sessionID(args map[string]interface{}) string {
	if id := strings.TrimSpace(getStringDefault(args, "session", "")); id != "" {
		return id
	}
	return lab.DefaultSessionID
}

func (s *Server) session(args map[string]interface{}) *lab.Session {
	return s.sessions.Get(sessionID(args))
}

func (s *Server) lookupElement(symbol string) (types.Element, error) {
	el, err := s.catalog.Lookup(symbol)
	if err != nil {
		return types.Element{}, newMCPError(ErrorCodeUnknownElement, "unknown element", map[string]interface{}{
			"symbol": symbol,
			"reason": err.Error(),
		})
	}
	return el, nil
}

func (s *Server) elementArg(args map[string]interface{}) (types.Element, error) {
	symbol, err := requiredString(args, "symbol")
	if err != nil {
		return types.Element{}, err
	}
	return s.lookupElement(symbol)
}

// elementsArg resolves an optional symbol list. given is false when the
// parameter is absent.
func (s *Server) elementsArg(args map[string]interface{}, key string) (elements []types.Element, given bool, err error) {
	symbols, given, err := getStringSlice(args, key)
	if err != nil || !given {
		return nil, given, err
	}
	if len(symbols) > lab.MaxSelection {
		return nil, true, newMCPError(ErrorCodeInvalidParams, fmt.Sprintf("at most %d symbols allowed", lab.MaxSelection), map[string]interface{}{
			"param": key,
			"count": len(symbols),
		})
	}

	elements = make([]types.Element, 0, len(symbols))
	for _, sym := range symbols {
		el, err := s.lookupElement(sym)
		if err != nil {
			return nil, true, err
		}
		elements = append(elements, el)
	}
	return elements, true, nil
}

func symbolsOf(elements []types.Element) []string {
	out := make([]string, len(elements))
	for i := range elements {
		out[i] = elements[i].Symbol
	}
	return out
}

func experimentError(sess *lab.Session, err error) error {
	data := map[string]interface{}{
		"session": sess.ID(),
		"reason":  err.Error(),
	}
	switch {
	case errors.Is(err, lab.ErrEmptySelection):
		return newMCPError(ErrorCodeEmptySelection, "no elements staged", data)
	case errors.Is(err, lab.ErrExperimentRunning):
		return newMCPError(ErrorCodeExperimentRunning, "an experiment is already running", data)
	case errors.Is(err, lab.ErrStaleExperiment), errors.Is(err, lab.ErrSessionClosed):
		return newMCPError(ErrorCodeExperimentAbandoned, "experiment abandoned", data)
	default:
		return newMCPError(ErrorCodeInternalError, "experiment failed", data)
	}
}
