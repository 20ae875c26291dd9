package types

import "errors"

// Domain errors for type validation
var (
	// Element errors
	ErrEmptySymbol         = errors.New("symbol cannot be empty")
	ErrInvalidAtomicNumber = errors.New("atomic number must be >= 1")
	ErrInvalidCategory     = errors.New("invalid element category")
	ErrInvalidPosition     = errors.New("period must be 1-7 and group 1-18")

	// Reaction errors
	ErrEmptyReactionID     = errors.New("reaction ID cannot be empty")
	ErrEmptyReactants      = errors.New("reactant set cannot be empty")
	ErrDuplicateReactant   = errors.New("reactant set repeats a symbol")
	ErrEmptyProducts       = errors.New("product list cannot be empty")
	ErrInvalidReactionType = errors.New("invalid reaction type")
	ErrInvalidEnergy       = errors.New("energy must be exothermic or endothermic")
)
