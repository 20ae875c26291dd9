package types

import (
	"fmt"
	"slices"
)

// ReactionType classifies a reaction
type ReactionType string

const (
	ReactionSynthesis     ReactionType = "synthesis"
	ReactionDecomposition ReactionType = "decomposition"
	ReactionCombustion    ReactionType = "combustion"
	ReactionAcidBase      ReactionType = "acid-base"
	ReactionDisplacement  ReactionType = "displacement"
	ReactionRedox         ReactionType = "redox"
)

// Valid reports whether t is a known reaction type
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionSynthesis, ReactionDecomposition, ReactionCombustion,
		ReactionAcidBase, ReactionDisplacement, ReactionRedox:
		return true
	default:
		return false
	}
}

// Energy tells whether a reaction releases or absorbs heat
type Energy string

const (
	Exothermic  Energy = "exothermic"
	Endothermic Energy = "endothermic"
)

// Valid reports whether e is a known energy tag
func (e Energy) Valid() bool {
	return e == Exothermic || e == Endothermic
}

// Reaction is an immutable record of the static reaction table.
// Reactants is a set: order carries no meaning and symbols never repeat.
type Reaction struct {
	// Identification
	ID   string `json:"id"`
	Name string `json:"name"`

	// Chemistry
	Reactants        []string     `json:"reactants"`
	Products         []string     `json:"products"`
	Equation         string       `json:"equation"`
	BalancedEquation string       `json:"balanced_equation"`
	Type             ReactionType `json:"type"`
	Energy           Energy       `json:"energy"`

	// Presentation
	Conditions  string `json:"conditions,omitempty"`
	Description string `json:"description"`
}

// Validate checks if the reaction record is well formed
func (r *Reaction) Validate() error {
	if r.ID == "" {
		return ErrEmptyReactionID
	}
	if len(r.Reactants) == 0 {
		return fmt.Errorf("%w: reaction %s", ErrEmptyReactants, r.ID)
	}
	seen := make(map[string]struct{}, len(r.Reactants))
	for _, s := range r.Reactants {
		if s == "" {
			return fmt.Errorf("%w: reaction %s", ErrEmptySymbol, r.ID)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: reaction %s repeats %s", ErrDuplicateReactant, r.ID, s)
		}
		seen[s] = struct{}{}
	}
	if len(r.Products) == 0 {
		return fmt.Errorf("%w: reaction %s", ErrEmptyProducts, r.ID)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidReactionType, r.Type)
	}
	if !r.Energy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnergy, r.Energy)
	}
	return nil
}

// HasReactant reports whether symbol is part of the reactant set
func (r *Reaction) HasReactant(symbol string) bool {
	return slices.Contains(r.Reactants, symbol)
}

// Summary renders the one-line history text for the reaction
func (r *Reaction) Summary() string {
	return r.Name + ": " + r.Equation
}
