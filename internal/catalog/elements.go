package catalog

import "github.com/dshills/chemlab-mcp/pkg/types"

func pauling(v float64) *float64 { return &v }

// builtinElements covers periods 1-3 in full plus selected period 4 elements
var builtinElements = []types.Element{
	{Symbol: "H", Name: "Hydrogen", AtomicNumber: 1, AtomicMass: 1.008, Category: types.CategoryNonmetal, Electronegativity: pauling(2.2), ValenceElectrons: 1, Period: 1, Group: 1},
	{Symbol: "He", Name: "Helium", AtomicNumber: 2, AtomicMass: 4.003, Category: types.CategoryNobleGas, ValenceElectrons: 2, Period: 1, Group: 18},
	{Symbol: "Li", Name: "Lithium", AtomicNumber: 3, AtomicMass: 6.941, Category: types.CategoryAlkaliMetal, Electronegativity: pauling(0.98), ValenceElectrons: 1, Period: 2, Group: 1},
	{Symbol: "Be", Name: "Beryllium", AtomicNumber: 4, AtomicMass: 9.012, Category: types.CategoryAlkalineEarth, Electronegativity: pauling(1.57), ValenceElectrons: 2, Period: 2, Group: 2},
	{Symbol: "B", Name: "Boron", AtomicNumber: 5, AtomicMass: 10.811, Category: types.CategoryMetalloid, Electronegativity: pauling(2.04), ValenceElectrons: 3, Period: 2, Group: 13},
	{Symbol: "C", Name: "Carbon", AtomicNumber: 6, AtomicMass: 12.011, Category: types.CategoryNonmetal, Electronegativity: pauling(2.55), ValenceElectrons: 4, Period: 2, Group: 14},
	{Symbol: "N", Name: "Nitrogen", AtomicNumber: 7, AtomicMass: 14.007, Category: types.CategoryNonmetal, Electronegativity: pauling(3.04), ValenceElectrons: 5, Period: 2, Group: 15},
	{Symbol: "O", Name: "Oxygen", AtomicNumber: 8, AtomicMass: 15.999, Category: types.CategoryNonmetal, Electronegativity: pauling(3.44), ValenceElectrons: 6, Period: 2, Group: 16},
	{Symbol: "F", Name: "Fluorine", AtomicNumber: 9, AtomicMass: 18.998, Category: types.CategoryHalogen, Electronegativity: pauling(3.98), ValenceElectrons: 7, Period: 2, Group: 17},
	{Symbol: "Ne", Name: "Neon", AtomicNumber: 10, AtomicMass: 20.180, Category: types.CategoryNobleGas, ValenceElectrons: 8, Period: 2, Group: 18},
	{Symbol: "Na", Name: "Sodium", AtomicNumber: 11, AtomicMass: 22.990, Category: types.CategoryAlkaliMetal, Electronegativity: pauling(0.93), ValenceElectrons: 1, Period: 3, Group: 1},
	{Symbol: "Mg", Name: "Magnesium", AtomicNumber: 12, AtomicMass: 24.305, Category: types.CategoryAlkalineEarth, Electronegativity: pauling(1.31), ValenceElectrons: 2, Period: 3, Group: 2},
	{Symbol: "Al", Name: "Aluminum", AtomicNumber: 13, AtomicMass: 26.982, Category: types.CategoryPostTransition, Electronegativity: pauling(1.61), ValenceElectrons: 3, Period: 3, Group: 13},
	{Symbol: "Si", Name: "Silicon", AtomicNumber: 14, AtomicMass: 28.086, Category: types.CategoryMetalloid, Electronegativity: pauling(1.90), ValenceElectrons: 4, Period: 3, Group: 14},
	{Symbol: "P", Name: "Phosphorus", AtomicNumber: 15, AtomicMass: 30.974, Category: types.CategoryNonmetal, Electronegativity: pauling(2.19), ValenceElectrons: 5, Period: 3, Group: 15},
	{Symbol: "S", Name: "Sulfur", AtomicNumber: 16, AtomicMass: 32.065, Category: types.CategoryNonmetal, Electronegativity: pauling(2.58), ValenceElectrons: 6, Period: 3, Group: 16},
	{Symbol: "Cl", Name: "Chlorine", AtomicNumber: 17, AtomicMass: 35.453, Category: types.CategoryHalogen, Electronegativity: pauling(3.16), ValenceElectrons: 7, Period: 3, Group: 17},
	{Symbol: "Ar", Name: "Argon", AtomicNumber: 18, AtomicMass: 39.948, Category: types.CategoryNobleGas, ValenceElectrons: 8, Period: 3, Group: 18},
	{Symbol: "K", Name: "Potassium", AtomicNumber: 19, AtomicMass: 39.098, Category: types.CategoryAlkaliMetal, Electronegativity: pauling(0.82), ValenceElectrons: 1, Period: 4, Group: 1},
	{Symbol: "Ca", Name: "Calcium", AtomicNumber: 20, AtomicMass: 40.078, Category: types.CategoryAlkalineEarth, Electronegativity: pauling(1.00), ValenceElectrons: 2, Period: 4, Group: 2},
	{Symbol: "Fe", Name: "Iron", AtomicNumber: 26, AtomicMass: 55.845, Category: types.CategoryTransitionMetal, Electronegativity: pauling(1.83), ValenceElectrons: 2, Period: 4, Group: 8},
	{Symbol: "Cu", Name: "Copper", AtomicNumber: 29, AtomicMass: 63.546, Category: types.CategoryTransitionMetal, Electronegativity: pauling(1.90), ValenceElectrons: 1, Period: 4, Group: 11},
	{Symbol: "Zn", Name: "Zinc", AtomicNumber: 30, AtomicMass: 65.38, Category: types.CategoryTransitionMetal, Electronegativity: pauling(1.65), ValenceElectrons: 2, Period: 4, Group: 12},
	{Symbol: "Br", Name: "Bromine", AtomicNumber: 35, AtomicMass: 79.904, Category: types.CategoryHalogen, Electronegativity: pauling(2.96), ValenceElectrons: 7, Period: 4, Group: 17},
}
