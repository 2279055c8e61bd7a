package competitor

import "errors"

var (
	// ErrCompetitorNotFound indicates the competitor doesn't exist.
	ErrCompetitorNotFound = errors.New("competitor not found")
	// ErrInvalidInput indicates invalid competitor input.
	ErrInvalidInput = errors.New("invalid competitor input")
)
