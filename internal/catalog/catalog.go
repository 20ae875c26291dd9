package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/chemlab-mcp/pkg/types"
)

// Catalog is a read-only index over a fixed set of elements
type Catalog struct {
	elements []types.Element
	bySymbol map[string]int
}

// New builds a catalog, rejecting invalid or duplicate elements
func New(elements []types.Element) (*Catalog, error) {
	c := &Catalog{
		elements: make([]types.Element, len(elements)),
		bySymbol: make(map[string]int, len(elements)),
	}
	copy(c.elements, elements)

	for i := range c.elements {
		el := &c.elements[i]
		if err := el.Validate(); err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i, el.Symbol, err)
		}
		if _, dup := c.bySymbol[el.Symbol]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSymbol, el.Symbol)
		}
		c.bySymbol[el.Symbol] = i
	}

	slices.SortStableFunc(c.elements, func(a, b types.Element) int {
		return a.AtomicNumber - b.AtomicNumber
	})
	for i := range c.elements {
		c.bySymbol[c.elements[i].Symbol] = i
	}

	return c, nil
}

var defaultCatalog = mustNew(builtinElements)

func mustNew(elements []types.Element) *Catalog {
	c, err := New(elements)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid builtin table: %v", err))
	}
	return c
}

// Default returns the built-in periodic table catalog
func Default() *Catalog {
	return defaultCatalog
}

// Len returns the number of elements
func (c *Catalog) Len() int {
	return len(c.elements)
}

// All returns every element ordered by atomic number
func (c *Catalog) All() []types.Element {
	return slices.Clone(c.elements)
}

// GetBySymbol looks up an element by its exact symbol
func (c *Catalog) GetBySymbol(symbol string) (types.Element, bool) {
	i, ok := c.bySymbol[symbol]
	if !ok {
		return types.Element{}, false
	}
	return c.elements[i], true
}

// Lookup resolves a user-typed symbol, tolerating surrounding whitespace and
// case ("na", " NA " and "Na" all resolve to sodium).
func (c *Catalog) Lookup(symbol string) (types.Element, error) {
	s := normalizeSymbol(symbol)
	if s == "" {
		return types.Element{}, types.ErrEmptySymbol
	}
	el, ok := c.GetBySymbol(s)
	if !ok {
		return types.Element{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, strings.TrimSpace(symbol))
	}
	return el, nil
}

// GetByCategory returns the elements of one category, by atomic number
func (c *Catalog) GetByCategory(category types.Category) []types.Element {
	return c.filter(func(el *types.Element) bool { return el.Category == category })
}

// ByPeriod returns the elements of one period (row)
func (c *Catalog) ByPeriod(period int) []types.Element {
	return c.filter(func(el *types.Element) bool { return el.Period == period })
}

// ByGroup returns the elements of one group (column)
func (c *Catalog) ByGroup(group int) []types.Element {
	return c.filter(func(el *types.Element) bool { return el.Group == group })
}

// Filter narrows a listing. Zero-valued fields are ignored.
type Filter struct {
	Category types.Category
	Period   int
	Group    int
}

// List returns the elements matching every set field of f
func (c *Catalog) List(f Filter) []types.Element {
	return c.filter(func(el *types.Element) bool {
		if f.Category != "" && el.Category != f.Category {
			return false
		}
		if f.Period != 0 && el.Period != f.Period {
			return false
		}
		if f.Group != 0 && el.Group != f.Group {
			return false
		}
		return true
	})
}

func (c *Catalog) filter(keep func(*types.Element) bool) []types.Element {
	var out []types.Element
	for i := range c.elements {
		if keep(&c.elements[i]) {
			out = append(out, c.elements[i])
		}
	}
	return out
}

// normalizeSymbol canonicalizes casing: first letter upper, rest lower
func normalizeSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
