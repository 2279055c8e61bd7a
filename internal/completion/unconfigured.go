package completion

import (
	"context"
	"errors"
)

// Unconfigured is a Generator used when no provider API key is set. Every
// call fails with a typed upstream failure so AI stages surface a clear
// error instead of a nil-client panic.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string, PromptContext) (*StageOutput, error) {
	return nil, &Failure{Kind: FailureUpstream, Err: errors.New("no generation provider configured")}
}
