package reaction

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// Matcher resolves a collection of element symbols to a reaction of a fixed
// table. A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	reactions []types.Reaction
	byKey     map[string]int
	byID      map[string]int
}

// NewMatcher validates the table and indexes it by reactant set.
// Two entries with the same reactant set are rejected, so a match is never
// ambiguous.
func NewMatcher(reactions []types.Reaction) (*Matcher, error) {
	m := &Matcher{
		reactions: make([]types.Reaction, len(reactions)),
		byKey:     make(map[string]int, len(reactions)),
		byID:      make(map[string]int, len(reactions)),
	}

	for i := range reactions {
		r := reactions[i]
		r.Reactants = slices.Clone(r.Reactants)
		r.Products = slices.Clone(r.Products)

		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("reaction %d: %w", i, err)
		}
		if j, dup := m.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s (entries %d and %d)", ErrDuplicateID, r.ID, j, i)
		}

		key := Key(r.Reactants)
		if j, dup := m.byKey[key]; dup {
			return nil, fmt.Errorf("%w: {%s} used by %s and %s",
				ErrDuplicateReactantSet, key, m.reactions[j].ID, r.ID)
		}

		m.reactions[i] = r
		m.byKey[key] = i
		m.byID[r.ID] = i
	}

	return m, nil
}

var defaultMatcher = mustNewMatcher(builtinReactions)

func mustNewMatcher(reactions []types.Reaction) *Matcher {
	m, err := NewMatcher(reactions)
	if err != nil {
		panic(fmt.Sprintf("reaction: invalid builtin table: %v", err))
	}
	return m
}

// Default returns the matcher over the built-in reaction table
func Default() *Matcher {
	return defaultMatcher
}

// Match compares the set of unique symbols with every reactant set and
// returns the reaction whose set is exactly equal. Order and repetition in
// symbols are ignored. Empty, unknown or oversized input yields NoMatch.
func (m *Matcher) Match(symbols []string) types.MatchResult {
	if len(symbols) == 0 {
		return types.NoMatch
	}
	i, ok := m.byKey[Key(symbols)]
	if !ok {
		return types.NoMatch
	}
	r := m.reactions[i]
	r.Reactants = slices.Clone(r.Reactants)
	r.Products = slices.Clone(r.Products)
	return types.Matched(&r)
}

// Get returns a reaction by ID
func (m *Matcher) Get(id string) (types.Reaction, bool) {
	i, ok := m.byID[id]
	if !ok {
		return types.Reaction{}, false
	}
	return m.reactions[i], true
}

// Reactions returns the table in its original order
func (m *Matcher) Reactions() []types.Reaction {
	return slices.Clone(m.reactions)
}

// Len returns the number of table entries
func (m *Matcher) Len() int {
	return len(m.reactions)
}

// Key canonicalizes a symbol collection into its set key: unique symbols,
// sorted, joined with "+". Empty symbols are kept so that a set containing
// one never collides with the key of its non-empty members.
func Key(symbols []string) string {
	set := slices.Clone(symbols)
	slices.Sort(set)
	return strings.Join(slices.Compact(set), "+")
}
