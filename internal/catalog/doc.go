// Package catalog provides the static periodic table used by the lab.
//
// The built-in catalog holds the first three periods in full plus a handful
// of period 4 elements. Elements are immutable; lookups return copies.
//
//	el, ok := catalog.Default().GetBySymbol("Na")
//	halogens := catalog.Default().GetByCategory(types.CategoryHalogen)
//
// The package also carries the qualitative chemistry helpers shown next to a
// selection: bond type prediction from electronegativity difference,
// reactivity estimates, safety warnings, electron configurations and
// periodic trends.
package catalog
