// Package logger provides structured logging for the monitoring service.
package logger

import "errors"

// Common errors returned by the logger package.
var (
	// ErrInvalidLevel is returned when an invalid logging level is provided.
	ErrInvalidLevel = errors.New("invalid logging level")
	// ErrInvalidEncoding is returned when an invalid log encoding format is provided.
	ErrInvalidEncoding = errors.New("invalid log encoding format")
	// ErrInvalidOutputPath is returned when an output path cannot be opened.
	ErrInvalidOutputPath = errors.New("invalid output path")
	// ErrInvalidFields is reported when fields are not key-value pairs.
	ErrInvalidFields = errors.New("invalid fields: must be key-value pairs")
)
