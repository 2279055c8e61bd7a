package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/venturly/venturly/internal/completion"
)

// Generator is a mock for completion.Generator.
type Generator struct {
	mock.Mock
}

func (m *Generator) Generate(ctx context.Context, stageID string, pc completion.PromptContext) (*completion.StageOutput, error) {
	args := m.Called(ctx, stageID, pc)
	if out, ok := args.Get(0).(*completion.StageOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
