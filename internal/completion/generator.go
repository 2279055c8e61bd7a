// Package completion adapts an external text-generation provider. The engine
// hands it a structured prompt context and gets back a structured stage
// output or a typed failure; it performs no analysis of its own.
package completion

import "context"

// Generator produces stage output from a structured prompt context. The
// stageID selects the response contract; it is one of the pipeline stage
// identifiers ("competitors", "marketGaps", "features", "validationPlan").
type Generator interface {
	Generate(ctx context.Context, stageID string, pc PromptContext) (*StageOutput, error)
}

// PromptContext carries the upstream project data a stage generation needs.
type PromptContext struct {
	Title       string
	Idea        string
	Competitors []CompetitorInfo
	Gaps        []GapInfo
	SelectedGap *GapInfo
	Features    []FeatureDraft
	Guidance    string
}

// CompetitorInfo describes one competitor, as prompt input or draft output.
type CompetitorInfo struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

// GapInfo describes one scored market gap.
type GapInfo struct {
	Gap         string `json:"gap"`
	Positioning string `json:"positioning_suggestion"`
	Score       int    `json:"score"`
	Rationale   string `json:"rationale"`
}

// FeatureDraft describes one proposed feature.
type FeatureDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// StepDraft describes one proposed validation step.
type StepDraft struct {
	Title    string `json:"title"`
	Goal     string `json:"goal,omitempty"`
	Method   string `json:"method,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// StageOutput is the parsed result of one generation call. Exactly one slice
// is populated, keyed by the stage that was generated.
type StageOutput struct {
	Competitors []CompetitorInfo `json:"competitors,omitempty"`
	Gaps        []GapInfo        `json:"gaps,omitempty"`
	Features    []FeatureDraft   `json:"features,omitempty"`
	Steps       []StepDraft      `json:"steps,omitempty"`
}
