package molecule

import (
	"fmt"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// Shape identifies a renderable molecule layout
type Shape string

const (
	ShapeWater            Shape = "water"
	ShapeSalt             Shape = "salt"
	ShapeCarbonDioxide    Shape = "carbon-dioxide"
	ShapeHydrogenChloride Shape = "hydrogen-chloride"
	ShapeGeneric          Shape = "generic"
)

// Valid reports whether s is a known shape
func (s Shape) Valid() bool {
	switch s {
	case ShapeWater, ShapeSalt, ShapeCarbonDioxide, ShapeHydrogenChloride, ShapeGeneric:
		return true
	default:
		return false
	}
}

// Vec3 is a scene position
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Atom is a single sphere of a molecule layout
type Atom struct {
	Symbol   string  `json:"symbol"`
	Position Vec3    `json:"position"`
	Color    string  `json:"color"`
	Scale    float64 `json:"scale"`
}

// Bond joins two atoms by index into Descriptor.Atoms
type Bond struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Descriptor is the presentation-ready layout of a molecule
type Descriptor struct {
	Shape   Shape  `json:"shape"`
	Formula string `json:"formula"`
	Atoms   []Atom `json:"atoms"`
	Bonds   []Bond `json:"bonds"`
}

// ShapeFor maps a product formula to its layout
func ShapeFor(formula string) Shape {
	switch formula {
	case "H2O":
		return ShapeWater
	case "NaCl":
		return ShapeSalt
	case "CO2":
		return ShapeCarbonDioxide
	case "HCl":
		return ShapeHydrogenChloride
	default:
		return ShapeGeneric
	}
}

// Describe builds the layout for a specific shape. Generic shapes need a
// formula; use DescribeFormula for those.
func Describe(shape Shape) (Descriptor, error) {
	switch shape {
	case ShapeWater:
		return Descriptor{
			Shape:   shape,
			Formula: "H2O",
			Atoms: []Atom{
				atom("O", 0, 0, 1),
				atom("H", -1.5, 1, 0.6),
				atom("H", 1.5, 1, 0.6),
			},
			Bonds: []Bond{{0, 1}, {0, 2}},
		}, nil
	case ShapeSalt:
		return Descriptor{
			Shape:   shape,
			Formula: "NaCl",
			Atoms: []Atom{
				atom("Na", -1.5, 0, 1),
				atom("Cl", 1.5, 0, 1),
			},
			Bonds: []Bond{},
		}, nil
	case ShapeCarbonDioxide:
		return Descriptor{
			Shape:   shape,
			Formula: "CO2",
			Atoms: []Atom{
				atom("C", 0, 0, 1),
				atom("O", -2, 0, 1),
				atom("O", 2, 0, 1),
			},
			Bonds: []Bond{{0, 1}, {0, 2}},
		}, nil
	case ShapeHydrogenChloride:
		return Descriptor{
			Shape:   shape,
			Formula: "HCl",
			Atoms: []Atom{
				atom("H", -1, 0, 0.6),
				atom("Cl", 1, 0, 1),
			},
			Bonds: []Bond{{0, 1}},
		}, nil
	case ShapeGeneric:
		return DescribeFormula("")
	default:
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
}

// DescribeFormula returns the layout for formula, falling back to a single
// grey placeholder atom labelled with its first two characters.
func DescribeFormula(formula string) (Descriptor, error) {
	if shape := ShapeFor(formula); shape != ShapeGeneric {
		return Describe(shape)
	}

	label := formula
	if label == "" {
		label = "Unknown"
	}
	if len(label) > 2 {
		label = label[:2]
	}
	return Descriptor{
		Shape:   ShapeGeneric,
		Formula: formula,
		Atoms: []Atom{{
			Symbol: label,
			Color:  fallbackColor,
			Scale:  1,
		}},
		Bonds: []Bond{},
	}, nil
}

// ForResult picks the layout of the first product with a specific shape,
// else a generic layout of the first product. ok is false for NoMatch.
func ForResult(result types.MatchResult) (d Descriptor, ok bool) {
	if !result.Found() {
		return Descriptor{}, false
	}

	products := result.Reaction.Products
	for _, p := range products {
		if ShapeFor(p) != ShapeGeneric {
			d, _ = DescribeFormula(p)
			return d, true
		}
	}

	first := ""
	if len(products) > 0 {
		first = products[0]
	}
	d, _ = DescribeFormula(first)
	return d, true
}

// Layout spreads the selected elements along the x axis, three units apart
func Layout(elements []types.Element) []Atom {
	atoms := make([]Atom, len(elements))
	half := float64(len(elements)) / 2
	for i, el := range elements {
		atoms[i] = Atom{
			Symbol:   el.Symbol,
			Position: Vec3{X: (float64(i) - half) * 3},
			Color:    AtomColor(el.Symbol),
			Scale:    1,
		}
	}
	return atoms
}

func atom(symbol string, x, y, scale float64) Atom {
	return Atom{
		Symbol:   symbol,
		Position: Vec3{X: x, Y: y},
		Color:    AtomColor(symbol),
		Scale:    scale,
	}
}
