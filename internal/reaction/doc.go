// Package reaction implements the reaction-matching engine.
//
// A Matcher holds a fixed table of reactions, each keyed by its reactant
// set. Matching reduces the input symbols to a set and looks for an entry
// whose reactant set is exactly equal:
//
//	res := reaction.Default().Match([]string{"Cl", "Na", "Na"})
//	if res.Found() {
//	    fmt.Println(res.Reaction.Equation) // 2Na + Cl2 → 2NaCl
//	}
//
// Subsets and supersets of a reactant set do not match. Matching is pure and
// never returns an error; anything that matches nothing is types.NoMatch.
//
// # Table validation
//
// NewMatcher rejects tables where two entries share a reactant set, so the
// outcome never depends on table order.
package reaction
