package db

import "errors"

var (
	// requested entity is not found.
	ErrMissing = errors.New("missing")

	// entity to be created conflicts with existing one.
	ErrConflict = errors.New("conflict")
)
