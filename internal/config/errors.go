package config

import (
	"errors"
	"fmt"
)

// ErrConfigInvalid is returned when the configuration is invalid.
var ErrConfigInvalid = errors.New("invalid configuration")

// ValidationError represents an error in one configuration section.
type ValidationError struct {
	Section string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %v", e.Section, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrConfigInvalid for any section failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrConfigInvalid
}
