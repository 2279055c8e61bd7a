package credit

import "errors"

var (
	// ErrOutOfCredits indicates the project's tier budget is exhausted.
	ErrOutOfCredits = errors.New("out of credits")
	// ErrConcurrentConflict indicates the consume retries were exhausted by
	// concurrent consumers.
	ErrConcurrentConflict = errors.New("concurrent credit conflict")
)
