package types

import "fmt"

// Category represents the chemical family of an element
type Category string

const (
	CategoryAlkaliMetal     Category = "alkali-metal"
	CategoryAlkalineEarth   Category = "alkaline-earth"
	CategoryTransitionMetal Category = "transition-metal"
	CategoryNonmetal        Category = "nonmetal"
	CategoryMetalloid       Category = "metalloid"
	CategoryNobleGas        Category = "noble-gas"
	CategoryHalogen         Category = "halogen"
	CategoryPostTransition  Category = "post-transition"
)

// Categories lists every category in periodic-table display order
var Categories = []Category{
	CategoryAlkaliMetal,
	CategoryAlkalineEarth,
	CategoryTransitionMetal,
	CategoryPostTransition,
	CategoryMetalloid,
	CategoryNonmetal,
	CategoryHalogen,
	CategoryNobleGas,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryAlkaliMetal, CategoryAlkalineEarth, CategoryTransitionMetal, CategoryNonmetal,
		CategoryMetalloid, CategoryNobleGas, CategoryHalogen, CategoryPostTransition:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a category tag into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Reactive reports whether elements of this category react readily
// (alkali metals, alkaline earths and halogens).
func (c Category) Reactive() bool {
	switch c {
	case CategoryAlkaliMetal, CategoryAlkalineEarth, CategoryHalogen:
		return true
	default:
		return false
	}
}

// Metallic reports whether the category has high metallic character
func (c Category) Metallic() bool {
	switch c {
	case CategoryAlkaliMetal, CategoryAlkalineEarth, CategoryTransitionMetal:
		return true
	default:
		return false
	}
}

// Element is an immutable entry of the periodic table catalog
type Element struct {
	// Identification
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	AtomicNumber int      `json:"atomic_number"`
	Category     Category `json:"category"`

	// Properties
	AtomicMass        float64  `json:"atomic_mass"`
	Electronegativity *float64 `json:"electronegativity,omitempty"` // Nil for noble gases
	ValenceElectrons  int      `json:"valence_electrons"`

	// Position
	Period int `json:"period"`
	Group  int `json:"group"`
}

// Validate checks if the element is well formed
func (e *Element) Validate() error {
	if e.Symbol == "" {
		return ErrEmptySymbol
	}
	if e.AtomicNumber < 1 {
		return ErrInvalidAtomicNumber
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, e.Category)
	}
	if e.Period < 1 || e.Period > 7 || e.Group < 1 || e.Group > 18 {
		return ErrInvalidPosition
	}
	return nil
}

// HasElectronegativity reports whether a Pauling value is known
func (e *Element) HasElectronegativity() bool {
	return e.Electronegativity != nil && *e.Electronegativity > 0
}
