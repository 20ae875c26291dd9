package catalog

import "errors"

var (
	// ErrUnknownSymbol is returned when a symbol is not in the catalog
	ErrUnknownSymbol = errors.New("unknown element symbol")
	// ErrDuplicateSymbol is returned when a catalog lists a symbol twice
	ErrDuplicateSymbol = errors.New("duplicate element symbol")
)
