package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/chemlab-mcp/internal/lab"
	"github.com/dshills/chemlab-mcp/internal/storage"
	"github.com/dshills/chemlab-mcp/pkg/types"
)

// sessionProperty is shared by every tool that touches a lab session
func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Lab session id. Sessions are independent; omit to use the default session",
		"default":     lab.DefaultSessionID,
	}
}

func symbolProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func symbolsProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type": "string",
		},
		"maxItems": lab.MaxSelection,
	}
}

func categoryEnum() []string {
	out := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		out[i] = string(c)
	}
	return out
}

// listElementsTool returns the tool definition for list_elements
func listElementsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_elements",
		Description: "List the elements available in the lab, ordered by atomic number",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Only elements of this category",
					"enum":        categoryEnum(),
				},
				"period": map[string]interface{}{
					"type":        "integer",
					"description": "Only elements of this period (row)",
					"minimum":     1,
					"maximum":     7,
				},
				"group": map[string]interface{}{
					"type":        "integer",
					"description": "Only elements of this group (column)",
					"minimum":     1,
					"maximum":     18,
				},
			},
		},
	}
}

// getElementTool returns the tool definition for get_element
func getElementTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_element",
		Description: "Get an element's properties, electron configuration and periodic trends",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbol": symbolProperty("Element symbol, e.g. Na"),
			},
			Required: []string{"symbol"},
		},
	}
}

// matchReactionTool returns the tool definition for match_reaction
func matchReactionTool() mcp.Tool {
	return mcp.Tool{
		Name: "match_reaction",
		Description: "Find the reaction whose reactants are exactly the given elements (order does not matter). " +
			"Without symbols, matches the session's current selection immediately and records the outcome in its history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbols": symbolsProperty("Element symbols to combine; omit to use the session selection"),
				"session": sessionProperty(),
			},
		},
	}
}

// addElementTool returns the tool definition for add_element
func addElementTool() mcp.Tool {
	return mcp.Tool{
		Name:        "add_element",
		Description: "Stage an element in the lab. A session holds at most 5 elements; extra adds are ignored",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbol":  symbolProperty("Element symbol to add"),
				"session": sessionProperty(),
			},
			Required: []string{"symbol"},
		},
	}
}

// removeElementTool returns the tool definition for remove_element
func removeElementTool() mcp.Tool {
	return mcp.Tool{
		Name:        "remove_element",
		Description: "Remove the first staged occurrence of an element. Invalidates the current reaction result",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbol":  symbolProperty("Element symbol to remove"),
				"session": sessionProperty(),
			},
			Required: []string{"symbol"},
		},
	}
}

// clearLabTool returns the tool definition for clear_lab
func clearLabTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_lab",
		Description: "Empty the selection, drop the current result and cancel a running experiment. History is kept",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session": sessionProperty(),
			},
		},
	}
}

// runExperimentTool returns the tool definition for run_experiment
func runExperimentTool() mcp.Tool {
	return mcp.Tool{
		Name: "run_experiment",
		Description: "Run the staged elements as an experiment and wait for the outcome. " +
			"The result is discarded if the selection changes while the experiment runs",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session": sessionProperty(),
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Where to look the reaction up: the built-in table or the configured remote service",
					"enum":        []string{sourceLocal, sourceRemote},
					"default":     sourceLocal,
				},
			},
		},
	}
}

// getLabTool returns the tool definition for get_lab
func getLabTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_lab",
		Description: "Get the session state: selection, current result, running experiment and recent history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session": sessionProperty(),
			},
		},
	}
}

// getHistoryTool returns the tool definition for get_history
func getHistoryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_history",
		Description: "Query the experiment archive, most recent first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session": sessionProperty(),
				"all_sessions": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include experiments from every session",
					"default":     false,
				},
				"reaction_id": map[string]interface{}{
					"type":        "string",
					"description": "Only experiments that produced this reaction",
				},
				"symbol": symbolProperty("Only experiments whose selection contained this element"),
				"matched": map[string]interface{}{
					"type":        "boolean",
					"description": "Only successful (true) or failed (false) experiments",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of experiments to return (1-100)",
					"default":     storage.DefaultListLimit,
					"minimum":     1,
					"maximum":     storage.MaxListLimit,
				},
			},
		},
	}
}

// analyzeSelectionTool returns the tool definition for analyze_selection
func analyzeSelectionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_selection",
		Description: "Analyze staged or given elements: molecular weight, predicted bonds, reactivity and safety warnings",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbols": symbolsProperty("Element symbols to analyze; omit to use the session selection"),
				"session": sessionProperty(),
			},
		},
	}
}

// describeMoleculeTool returns the tool definition for describe_molecule
func describeMoleculeTool() mcp.Tool {
	return mcp.Tool{
		Name: "describe_molecule",
		Description: "Get a 3D layout (atoms, positions, colors, bonds) for a formula, " +
			"or for the session's current reaction product, or its staged elements",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"formula": map[string]interface{}{
					"type":        "string",
					"description": "Product formula such as H2O; omit to describe the session",
				},
				"session": sessionProperty(),
			},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Get server status: live sessions, archive statistics and health",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// findReactionRemoteTool returns the tool definition for find_reaction_remote
func findReactionRemoteTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_reaction_remote",
		Description: "Look a reaction up on the configured remote service. Failures are reported as no reaction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"symbols": symbolsProperty("Element symbols to combine"),
			},
			Required: []string{"symbols"},
		},
	}
}
