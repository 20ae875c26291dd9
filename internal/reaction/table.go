package reaction

import "github.com/dshills/chemlab-mcp/pkg/types"

// builtinReactions is the fixed reaction table. No two entries share a
// reactant set; NewMatcher enforces it.
var builtinReactions = []types.Reaction{
	{
		ID:               "water-formation",
		Name:             "Water Formation",
		Reactants:        []string{"H", "O"},
		Products:         []string{"H2O"},
		Equation:         "2H2 + O2 → 2H2O",
		BalancedEquation: "2H2(g) + O2(g) → 2H2O(l)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Conditions:       "Ignition by spark or flame",
		Description:      "Hydrogen burns in oxygen to form water, releasing a large amount of energy.",
	},
	{
		ID:               "sodium-chloride",
		Name:             "Sodium Chloride Formation",
		Reactants:        []string{"Na", "Cl"},
		Products:         []string{"NaCl"},
		Equation:         "2Na + Cl2 → 2NaCl",
		BalancedEquation: "2Na(s) + Cl2(g) → 2NaCl(s)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Description:      "Sodium metal reacts violently with chlorine gas to form table salt.",
	},
	{
		ID:               "hydrogen-chloride",
		Name:             "Hydrogen Chloride Formation",
		Reactants:        []string{"H", "Cl"},
		Products:         []string{"HCl"},
		Equation:         "H2 + Cl2 → 2HCl",
		BalancedEquation: "H2(g) + Cl2(g) → 2HCl(g)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Conditions:       "Ultraviolet light",
		Description:      "Hydrogen and chlorine combine explosively under light to form hydrogen chloride gas.",
	},
	{
		ID:               "carbon-combustion",
		Name:             "Carbon Combustion",
		Reactants:        []string{"C", "O"},
		Products:         []string{"CO2"},
		Equation:         "C + O2 → CO2",
		BalancedEquation: "C(s) + O2(g) → CO2(g)",
		Type:             types.ReactionCombustion,
		Energy:           types.Exothermic,
		Conditions:       "High temperature",
		Description:      "Carbon burns completely in oxygen to produce carbon dioxide.",
	},
	{
		ID:               "methane-combustion",
		Name:             "Methane Combustion",
		Reactants:        []string{"C", "H", "O"},
		Products:         []string{"CO2", "H2O"},
		Equation:         "CH4 + 2O2 → CO2 + 2H2O",
		BalancedEquation: "CH4(g) + 2O2(g) → CO2(g) + 2H2O(g)",
		Type:             types.ReactionCombustion,
		Energy:           types.Exothermic,
		Conditions:       "Ignition",
		Description:      "Natural gas burns in oxygen, producing carbon dioxide and water vapour.",
	},
	{
		ID:               "magnesium-oxide",
		Name:             "Magnesium Combustion",
		Reactants:        []string{"Mg", "O"},
		Products:         []string{"MgO"},
		Equation:         "2Mg + O2 → 2MgO",
		BalancedEquation: "2Mg(s) + O2(g) → 2MgO(s)",
		Type:             types.ReactionCombustion,
		Energy:           types.Exothermic,
		Conditions:       "Ignition",
		Description:      "Magnesium ribbon burns with a brilliant white flame, leaving white magnesium oxide.",
	},
	{
		ID:               "aluminum-oxide",
		Name:             "Aluminum Oxidation",
		Reactants:        []string{"Al", "O"},
		Products:         []string{"Al2O3"},
		Equation:         "4Al + 3O2 → 2Al2O3",
		BalancedEquation: "4Al(s) + 3O2(g) → 2Al2O3(s)",
		Type:             types.ReactionCombustion,
		Energy:           types.Exothermic,
		Conditions:       "Powdered aluminum and ignition",
		Description:      "Aluminum powder burns fiercely to aluminum oxide.",
	},
	{
		ID:               "sulfur-dioxide",
		Name:             "Sulfur Combustion",
		Reactants:        []string{"S", "O"},
		Products:         []string{"SO2"},
		Equation:         "S + O2 → SO2",
		BalancedEquation: "S(s) + O2(g) → SO2(g)",
		Type:             types.ReactionCombustion,
		Energy:           types.Exothermic,
		Description:      "Sulfur burns with a blue flame to form pungent sulfur dioxide.",
	},
	{
		ID:               "iron-sulfide",
		Name:             "Iron Sulfide Formation",
		Reactants:        []string{"Fe", "S"},
		Products:         []string{"FeS"},
		Equation:         "Fe + S → FeS",
		BalancedEquation: "Fe(s) + S(s) → FeS(s)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Conditions:       "Heating",
		Description:      "Heated iron filings and sulfur glow as they combine into iron(II) sulfide.",
	},
	{
		ID:               "iron-rusting",
		Name:             "Rusting of Iron",
		Reactants:        []string{"Fe", "O"},
		Products:         []string{"Fe2O3"},
		Equation:         "4Fe + 3O2 → 2Fe2O3",
		BalancedEquation: "4Fe(s) + 3O2(g) → 2Fe2O3(s)",
		Type:             types.ReactionRedox,
		Energy:           types.Exothermic,
		Conditions:       "Presence of moisture",
		Description:      "Iron slowly oxidizes in moist air to form rust.",
	},
	{
		ID:               "copper-oxide",
		Name:             "Copper Oxidation",
		Reactants:        []string{"Cu", "O"},
		Products:         []string{"CuO"},
		Equation:         "2Cu + O2 → 2CuO",
		BalancedEquation: "2Cu(s) + O2(g) → 2CuO(s)",
		Type:             types.ReactionRedox,
		Energy:           types.Exothermic,
		Conditions:       "Heating in air",
		Description:      "Copper heated in air turns black as a layer of copper(II) oxide forms.",
	},
	{
		ID:               "ammonia-synthesis",
		Name:             "Haber Process",
		Reactants:        []string{"N", "H"},
		Products:         []string{"NH3"},
		Equation:         "N2 + 3H2 → 2NH3",
		BalancedEquation: "N2(g) + 3H2(g) ⇌ 2NH3(g)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Conditions:       "450 °C, 200 atm, iron catalyst",
		Description:      "Nitrogen and hydrogen combine reversibly to produce ammonia.",
	},
	{
		ID:               "potassium-chloride",
		Name:             "Potassium Chloride Formation",
		Reactants:        []string{"K", "Cl"},
		Products:         []string{"KCl"},
		Equation:         "2K + Cl2 → 2KCl",
		BalancedEquation: "2K(s) + Cl2(g) → 2KCl(s)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Description:      "Potassium reacts even more vigorously than sodium with chlorine.",
	},
	{
		ID:               "lithium-fluoride",
		Name:             "Lithium Fluoride Formation",
		Reactants:        []string{"Li", "F"},
		Products:         []string{"LiF"},
		Equation:         "2Li + F2 → 2LiF",
		BalancedEquation: "2Li(s) + F2(g) → 2LiF(s)",
		Type:             types.ReactionSynthesis,
		Energy:           types.Exothermic,
		Description:      "Lithium and fluorine form one of the most ionic compounds known.",
	},
	{
		ID:               "sodium-water",
		Name:             "Sodium in Water",
		Reactants:        []string{"Na", "H", "O"},
		Products:         []string{"NaOH", "H2"},
		Equation:         "2Na + 2H2O → 2NaOH + H2",
		BalancedEquation: "2Na(s) + 2H2O(l) → 2NaOH(aq) + H2(g)",
		Type:             types.ReactionDisplacement,
		Energy:           types.Exothermic,
		Description:      "Sodium skims across water, releasing hydrogen and leaving sodium hydroxide.",
	},
	{
		ID:               "neutralization",
		Name:             "Neutralization",
		Reactants:        []string{"Na", "O", "H", "Cl"},
		Products:         []string{"NaCl", "H2O"},
		Equation:         "NaOH + HCl → NaCl + H2O",
		BalancedEquation: "NaOH(aq) + HCl(aq) → NaCl(aq) + H2O(l)",
		Type:             types.ReactionAcidBase,
		Energy:           types.Exothermic,
		Conditions:       "Aqueous solution",
		Description:      "A strong base neutralizes a strong acid, producing salt and water.",
	},
	{
		ID:               "zinc-hydrochloric",
		Name:             "Zinc and Hydrochloric Acid",
		Reactants:        []string{"Zn", "H", "Cl"},
		Products:         []string{"ZnCl2", "H2"},
		Equation:         "Zn + 2HCl → ZnCl2 + H2",
		BalancedEquation: "Zn(s) + 2HCl(aq) → ZnCl2(aq) + H2(g)",
		Type:             types.ReactionDisplacement,
		Energy:           types.Exothermic,
		Conditions:       "Dilute acid",
		Description:      "Zinc displaces hydrogen from hydrochloric acid, producing bubbles of hydrogen gas.",
	},
	{
		ID:               "copper-sulfate-displacement",
		Name:             "Iron Displaces Copper",
		Reactants:        []string{"Fe", "Cu", "S", "O"},
		Products:         []string{"FeSO4", "Cu"},
		Equation:         "Fe + CuSO4 → FeSO4 + Cu",
		BalancedEquation: "Fe(s) + CuSO4(aq) → FeSO4(aq) + Cu(s)",
		Type:             types.ReactionDisplacement,
		Energy:           types.Exothermic,
		Conditions:       "Aqueous solution",
		Description:      "An iron nail in copper sulfate solution becomes coated with copper as the blue color fades.",
	},
	{
		ID:               "limestone-decomposition",
		Name:             "Thermal Decomposition of Limestone",
		Reactants:        []string{"Ca", "C", "O"},
		Products:         []string{"CaO", "CO2"},
		Equation:         "CaCO3 → CaO + CO2",
		BalancedEquation: "CaCO3(s) → CaO(s) + CO2(g)",
		Type:             types.ReactionDecomposition,
		Energy:           types.Endothermic,
		Conditions:       "Heated above 840 °C",
		Description:      "Calcium carbonate breaks down into quicklime and carbon dioxide when strongly heated.",
	},
}
