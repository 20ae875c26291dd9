package reaction

import "github.com/dshills/chemlab-mcp/pkg/types"

// Conditions lists the practical notes shown alongside a reaction result
func Conditions(r types.Reaction) []string {
	var notes []string

	switch r.Energy {
	case types.Exothermic:
		notes = append(notes, "Releases heat")
	case types.Endothermic:
		notes = append(notes, "Requires heat input")
	}

	switch r.Type {
	case types.ReactionCombustion:
		notes = append(notes, "Requires oxygen", "High temperature needed")
	case types.ReactionAcidBase:
		notes = append(notes, "Occurs in solution", "Fast reaction")
	}

	if r.HasReactant("Na") || r.HasReactant("K") {
		notes = append(notes, "Highly reactive", "May be violent")
	}

	return notes
}
