package normalize

import "errors"

var (
	// ErrEmptyAttributes is returned when a relation has no attributes.
	ErrEmptyAttributes = errors.New("relation has no attributes")

	// ErrUnknownAttribute is returned when a dependency uses an attribute that
	// is not part of the relation.
	ErrUnknownAttribute = errors.New("dependency uses an attribute outside the relation")

	// ErrTooFewChildren is returned when a decomposition has less than two
	// child relations.
	ErrTooFewChildren = errors.New("decomposition needs at least two child relations")
)
