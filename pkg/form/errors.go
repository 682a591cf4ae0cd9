package form

import "errors"

var (
	// ErrEmptyFieldName is returned when a field definition has no name.
	ErrEmptyFieldName = errors.New("form: field name is required")
	// ErrDuplicateField is returned when two field definitions share a name.
	ErrDuplicateField = errors.New("form: duplicate field name")
)
