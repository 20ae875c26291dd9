// Package molecule turns reaction products and lab selections into
// presentation data: atom spheres with positions, colors and scales, plus
// the bonds between them. It knows four concrete layouts (H2O, NaCl, CO2,
// HCl); anything else renders as a single generic placeholder.
package molecule
