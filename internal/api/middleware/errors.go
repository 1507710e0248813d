package middleware

import "errors"

// API key failures answered with 401.
var (
	ErrMissingAPIKey = errors.New("API key required: send X-API-Key or a Bearer token")
	ErrInvalidAPIKey = errors.New("API key rejected")
)
