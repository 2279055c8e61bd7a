package completion

import "fmt"

// FailureKind classifies a generation failure. The pipeline treats all kinds
// as equivalent for credit policy and surfaces the kind to the caller.
type FailureKind string

const (
	FailureRateLimited FailureKind = "RATE_LIMITED"
	FailureUpstream    FailureKind = "UPSTREAM_ERROR"
	FailureTimeout     FailureKind = "TIMEOUT"
)

// Failure is a typed generation failure from the provider.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
