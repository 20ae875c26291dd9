package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// Bond classification thresholds on the Pauling electronegativity difference
const (
	NonpolarThreshold = 0.5
	IonicThreshold    = 1.7
)

// BondType describes the predicted bond between two elements
type BondType string

const (
	BondNonpolarCovalent BondType = "nonpolar covalent"
	BondPolarCovalent    BondType = "polar covalent"
	BondIonic            BondType = "ionic"
)

// MolecularWeight sums the atomic masses of the given atoms
func MolecularWeight(elements []types.Element) float64 {
	total := 0.0
	for i := range elements {
		total += elements[i].AtomicMass
	}
	return total
}

// FormatAtomicMass renders a mass with three decimals
func FormatAtomicMass(mass float64) string {
	return strconv.FormatFloat(mass, 'f', 3, 64)
}

// FormatFormula renders atom counts as Unicode subscripts, so "H2O" becomes
// "H₂O". Digits that open a term are coefficients and stay as written:
// "2H2 + O2" becomes "2H₂ + O₂".
func FormatFormula(formula string) string {
	var b strings.Builder
	b.Grow(len(formula))
	subscript := false
	for _, r := range formula {
		switch {
		case r >= '0' && r <= '9':
			if subscript {
				b.WriteRune('₀' + (r - '0'))
				continue
			}
		case unicode.IsLetter(r) || r == ')' || r == ']':
			subscript = true
		default:
			subscript = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ElectronegativityDifference returns |EN(a) - EN(b)|, or 0 when either
// value is unknown
func ElectronegativityDifference(a, b types.Element) float64 {
	if !a.HasElectronegativity() || !b.HasElectronegativity() {
		return 0
	}
	return math.Abs(*a.Electronegativity - *b.Electronegativity)
}

// PredictBondType classifies the bond between a and b
func PredictBondType(a, b types.Element) BondType {
	diff := ElectronegativityDifference(a, b)
	switch {
	case diff < NonpolarThreshold:
		return BondNonpolarCovalent
	case diff < IonicThreshold:
		return BondPolarCovalent
	default:
		return BondIonic
	}
}

// Reactivity levels returned by PredictReactivity
const (
	ReactivityLow      = "Low reactivity due to noble gas presence"
	ReactivityHigh     = "High reactivity expected"
	ReactivityModerate = "Moderate reactivity"
	ReactivityDefault  = "Low to moderate reactivity"
)

// PredictReactivity gives a qualitative estimate for a selection.
// Any noble gas dominates; otherwise it counts reactive-category elements.
func PredictReactivity(elements []types.Element) string {
	reactive := 0
	for i := range elements {
		if elements[i].Category == types.CategoryNobleGas {
			return ReactivityLow
		}
		if elements[i].Category.Reactive() {
			reactive++
		}
	}

	switch {
	case reactive >= 2:
		return ReactivityHigh
	case reactive == 1:
		return ReactivityModerate
	default:
		return ReactivityDefault
	}
}

// SafetyWarnings lists hazard notes for a selection, without duplicates
func SafetyWarnings(elements []types.Element) []string {
	var warnings []string
	seen := make(map[string]struct{})

	for i := range elements {
		el := &elements[i]
		var w string
		switch el.Symbol {
		case "Na", "K":
			w = el.Name + " is highly reactive with water"
		case "Cl", "F":
			w = el.Name + " is toxic and corrosive"
		case "H":
			w = el.Name + " is highly flammable"
		case "O":
			w = el.Name + " supports combustion"
		default:
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		warnings = append(warnings, w)
	}

	return warnings
}

// subshell is one entry of the Madelung filling order
type subshell struct {
	label    string
	capacity int
}

var fillingOrder = []subshell{
	{"1s", 2}, {"2s", 2}, {"2p", 6}, {"3s", 2}, {"3p", 6}, {"4s", 2}, {"3d", 10},
	{"4p", 6}, {"5s", 2}, {"4d", 10}, {"5p", 6}, {"6s", 2}, {"4f", 14}, {"5d", 10},
	{"6p", 6}, {"7s", 2}, {"5f", 14}, {"6d", 10}, {"7p", 6},
}

// ElectronConfiguration returns the ground-state configuration following the
// Madelung rule, e.g. "1s2 2s2 2p6 3s1" for sodium. Anomalies such as copper
// are not special-cased.
func ElectronConfiguration(atomicNumber int) string {
	var parts []string
	remaining := atomicNumber
	for _, sub := range fillingOrder {
		if remaining <= 0 {
			break
		}
		n := min(remaining, sub.capacity)
		parts = append(parts, sub.label+strconv.Itoa(n))
		remaining -= n
	}
	return strings.Join(parts, " ")
}

// Trends is a qualitative summary of an element's periodic trends
type Trends struct {
	AtomicRadius      string `json:"atomic_radius"`
	IonizationEnergy  string `json:"ionization_energy"`
	Electronegativity string `json:"electronegativity"`
	MetallicCharacter string `json:"metallic_character"`
}

// PeriodicTrends derives qualitative trend labels from an element's position
func PeriodicTrends(el types.Element) Trends {
	t := Trends{
		AtomicRadius:      "Large",
		IonizationEnergy:  "Medium",
		Electronegativity: "Low",
		MetallicCharacter: "Low",
	}

	switch {
	case el.Period < 3:
		t.AtomicRadius = "Small"
	case el.Period < 5:
		t.AtomicRadius = "Medium"
	}

	switch {
	case el.Group < 3:
		t.IonizationEnergy = "Low"
	case el.Group > 16:
		t.IonizationEnergy = "High"
	}

	if el.HasElectronegativity() {
		switch en := *el.Electronegativity; {
		case en > 3:
			t.Electronegativity = "High"
		case en > 2:
			t.Electronegativity = "Medium"
		}
	}

	switch {
	case el.Category.Metallic():
		t.MetallicCharacter = "High"
	case el.Category == types.CategoryMetalloid:
		t.MetallicCharacter = "Medium"
	}

	return t
}
