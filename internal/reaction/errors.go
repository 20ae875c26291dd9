package reaction

import "errors"

var (
	// ErrDuplicateReactantSet is returned when two table entries would match
	// the same selection
	ErrDuplicateReactantSet = errors.New("duplicate reactant set")
	// ErrDuplicateID is returned when two table entries share an ID
	ErrDuplicateID = errors.New("duplicate reaction ID")
)
