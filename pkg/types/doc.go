// Package types provides shared type definitions for the chemlab MCP server.
//
// This package defines the domain types used across the catalog, the reaction
// matcher, lab sessions and the MCP tool layer.
//
// # Core Types
//
// Element is an immutable periodic-table entry from the static catalog:
//
//	na := types.Element{
//	    Symbol:       "Na",
//	    Name:         "Sodium",
//	    AtomicNumber: 11,
//	    Category:     types.CategoryAlkaliMetal,
//	}
//
// Reaction is an immutable record of the static reaction table. Its
// Reactants field is a set of symbols:
//
//	r := &types.Reaction{
//	    ID:        "sodium-chloride",
//	    Reactants: []string{"Na", "Cl"},
//	    Equation:  "2Na + Cl2 → 2NaCl",
//	    Energy:    types.Exothermic,
//	}
//
// # Match Results
//
// Matching never fails. A MatchResult either wraps a Reaction or equals the
// NoMatch sentinel:
//
//	if res := matcher.Match(symbols); res.Found() {
//	    fmt.Println(res.Reaction.Name)
//	}
//
// # Enumerations
//
// Category, ReactionType and Energy are closed string enumerations. Each has a
// Valid method backed by an exhaustive switch, so adding a value means
// touching every switch that maps it.
package types
