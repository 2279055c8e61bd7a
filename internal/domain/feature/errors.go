package feature

import "errors"

var (
	// ErrFeatureNotFound indicates the feature doesn't exist.
	ErrFeatureNotFound = errors.New("feature not found")
	// ErrInvalidInput indicates invalid feature input.
	ErrInvalidInput = errors.New("invalid feature input")
)
