package plan

import "errors"

var (
	// ErrStepNotFound indicates the validation step doesn't exist.
	ErrStepNotFound = errors.New("validation step not found")
	// ErrInvalidInput indicates invalid validation step input.
	ErrInvalidInput = errors.New("invalid validation step input")
)
