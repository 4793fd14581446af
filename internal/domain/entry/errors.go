package entry

import "errors"

var (
	// ErrEntryNotFound indicates the entry doesn't exist.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidInput indicates invalid input for entry operations.
	ErrInvalidInput = errors.New("invalid entry input")
)
