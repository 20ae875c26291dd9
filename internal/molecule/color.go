package molecule

import "github.com/dshills/chemlab-mcp/pkg/types"

const fallbackColor = "#888888"

// atomColors are CPK-style sphere colors for the catalog elements
var atomColors = map[string]string{
	"H":  "#ffffff",
	"He": "#d9ffff",
	"Li": "#cc80ff",
	"Be": "#c2ff00",
	"B":  "#ffb5b5",
	"C":  "#909090",
	"N":  "#3050f8",
	"O":  "#ff0d0d",
	"F":  "#90e050",
	"Ne": "#b3e3f5",
	"Na": "#ab5cf2",
	"Mg": "#8aff00",
	"Al": "#bfa6a6",
	"Si": "#f0c8a0",
	"P":  "#ff8000",
	"S":  "#ffff30",
	"Cl": "#1ff01f",
	"Ar": "#80d1e3",
	"K":  "#8f40d4",
	"Ca": "#3dff00",
	"Fe": "#e06633",
	"Cu": "#c88033",
	"Zn": "#7d80b0",
	"Br": "#a62929",
}

// AtomColor returns the sphere color for symbol, grey when unknown
func AtomColor(symbol string) string {
	if c, ok := atomColors[symbol]; ok {
		return c
	}
	return fallbackColor
}

// CategoryColor returns the periodic-table tile color for a category
func CategoryColor(c types.Category) string {
	switch c {
	case types.CategoryAlkaliMetal:
		return "#ef4444"
	case types.CategoryAlkalineEarth:
		return "#f97316"
	case types.CategoryTransitionMetal:
		return "#3b82f6"
	case types.CategoryNonmetal:
		return "#22c55e"
	case types.CategoryMetalloid:
		return "#a855f7"
	case types.CategoryNobleGas:
		return "#06b6d4"
	case types.CategoryHalogen:
		return "#eab308"
	case types.CategoryPostTransition:
		return "#9ca3af"
	default:
		return "#6b7280"
	}
}
