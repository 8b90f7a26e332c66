package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a series, movie or episode does not exist
	// in the active backend.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFormat is returned for episode addresses that are not of
	// the form season-episode.
	ErrInvalidFormat = errors.New("invalid episode address format")
)

// AddressError reports an episode address that could not be parsed.
type AddressError struct {
	Input string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidFormat, e.Input)
}

// Unwrap lets errors.Is match ErrInvalidFormat.
func (e *AddressError) Unwrap() error {
	return ErrInvalidFormat
}
