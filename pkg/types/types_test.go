package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("lanthanide")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCategoriesComplete(t *testing.T) {
	assert.Len(t, Categories, 8)
	seen := map[Category]bool{}
	for _, c := range Categories {
		assert.True(t, c.Valid())
		assert.False(t, seen[c], "duplicate category %s", c)
		seen[c] = true
	}
}

func TestElementValidate(t *testing.T) {
	en := 0.93
	na := Element{Symbol: "Na", Name: "Sodium", AtomicNumber: 11, Category: CategoryAlkaliMetal,
		AtomicMass: 22.990, Electronegativity: &en, ValenceElectrons: 1, Period: 3, Group: 1}
	require.NoError(t, na.Validate())
	assert.True(t, na.HasElectronegativity())

	bad := na
	bad.Symbol = ""
	assert.ErrorIs(t, bad.Validate(), ErrEmptySymbol)

	bad = na
	bad.Category = "unknown"
	assert.ErrorIs(t, bad.Validate(), ErrInvalidCategory)

	bad = na
	bad.Group = 19
	assert.ErrorIs(t, bad.Validate(), ErrInvalidPosition)

	ne := Element{Symbol: "Ne", AtomicNumber: 10, Category: CategoryNobleGas, Period: 2, Group: 18}
	assert.False(t, ne.HasElectronegativity())
}

func TestReactionValidate(t *testing.T) {
	r := Reaction{
		ID:        "sodium-chloride",
		Name:      "Sodium Chloride Formation",
		Reactants: []string{"Na", "Cl"},
		Products:  []string{"NaCl"},
		Equation:  "2Na + Cl2 → 2NaCl",
		Type:      ReactionSynthesis,
		Energy:    Exothermic,
	}
	require.NoError(t, r.Validate())
	assert.True(t, r.HasReactant("Cl"))
	assert.False(t, r.HasReactant("K"))
	assert.Equal(t, "Sodium Chloride Formation: 2Na + Cl2 → 2NaCl", r.Summary())

	tests := []struct {
		name   string
		mutate func(*Reaction)
		want   error
	}{
		{"missing id", func(r *Reaction) { r.ID = "" }, ErrEmptyReactionID},
		{"no reactants", func(r *Reaction) { r.Reactants = nil }, ErrEmptyReactants},
		{"repeated reactant", func(r *Reaction) { r.Reactants = []string{"Na", "Na"} }, ErrDuplicateReactant},
		{"no products", func(r *Reaction) { r.Products = nil }, ErrEmptyProducts},
		{"bad type", func(r *Reaction) { r.Type = "fusion" }, ErrInvalidReactionType},
		{"bad energy", func(r *Reaction) { r.Energy = "neutral" }, ErrInvalidEnergy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := r
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}
}

func TestMatchResultSummary(t *testing.T) {
	assert.False(t, NoMatch.Found())
	assert.Equal(t, NoReactionSummary, NoMatch.Summary())

	r := &Reaction{Name: "Water Formation", Equation: "2H2 + O2 → 2H2O"}
	m := Matched(r)
	assert.True(t, m.Found())
	assert.Equal(t, "Water Formation: 2H2 + O2 → 2H2O", m.Summary())
}

func TestExperimentRecordSymbols(t *testing.T) {
	rec := ExperimentRecord{Elements: []Element{{Symbol: "H"}, {Symbol: "O"}, {Symbol: "H"}}}
	assert.Equal(t, []string{"H", "O", "H"}, rec.Symbols())
}
