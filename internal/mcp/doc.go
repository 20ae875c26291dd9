// Package mcp implements the Model Context Protocol (MCP) server for chemlab.
//
// The server exposes a virtual chemistry lab to MCP clients. Clients stage
// up to five elements in a lab session, run them as an experiment and read
// back the matched reaction, its conditions and a 3D molecule layout.
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Standard output belongs to the protocol; all logging goes to stderr.
//
// # Basic Usage
//
// The MCP server is typically started via the serve command:
//
//	chemlab serve
//
// # Sessions
//
// Every lab tool accepts an optional "session" argument. Sessions are
// independent and created on first use; the least recently used session is
// dropped once CHEMLAB_MAX_SESSIONS are live. Omitting the argument selects
// the "default" session.
//
// # Tool: run_experiment
//
// Matches the staged elements after a short simulated delay
// (CHEMLAB_EXPERIMENT_DELAY) and waits for the outcome:
//
//	Request:
//	{
//	  "name": "run_experiment",
//	  "arguments": {"session": "bench-1"}
//	}
//
//	Response:
//	{
//	  "found": true,
//	  "summary": "Sodium Chloride Formation: 2Na + Cl2 → 2NaCl",
//	  "reaction": {"id": "sodium-chloride", "energy": "exothermic", ...},
//	  "conditions": ["Releases heat", "Highly reactive", "May be violent"],
//	  "molecule": {"shape": "salt", "atoms": [...], "bonds": []},
//	  "experiment_id": "0b6f...",
//	  "session": "bench-1"
//	}
//
// Changing the selection while an experiment runs abandons it; the call
// then fails with ErrorCodeExperimentAbandoned and nothing is recorded.
//
// # Tools
//
//   - list_elements, get_element: the element catalog
//   - match_reaction: immediate match of explicit symbols or of the session selection
//   - add_element, remove_element, clear_lab: edit the session selection
//   - run_experiment, get_lab: run and inspect a session
//   - get_history: query the experiment archive
//   - analyze_selection, describe_molecule: chemistry helpers and presentation data
//   - get_status: live sessions, archive statistics and health
//   - find_reaction_remote: only registered when CHEMLAB_REMOTE_URL is set
//
// # Error Handling
//
// Protocol errors are returned as *MCPError with JSON-RPC style codes:
//
//   - -32602: invalid parameters
//   - -32603: internal error
//   - -32001: unknown element symbol
//   - -32002: experiment already running in the session
//   - -32003: nothing staged
//   - -32004: experiment abandoned
//   - -32005: remote lookup not configured
//
// A reactant set without a known reaction is not an error: responses carry
// "found": false and the summary "No reaction found for these elements".
package mcp
