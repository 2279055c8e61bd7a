// Package stage declares the five pipeline stages, their ordering, input
// contracts, and the derived pipeline state. It is pure and performs no I/O:
// every question is answered from a project snapshot.
package stage

import (
	"errors"

	"github.com/venturly/venturly/internal/completion"
	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
)

// ID identifies one pipeline stage.
type ID string

const (
	Idea           ID = "idea"
	Competitors    ID = "competitors"
	MarketGaps     ID = "marketGaps"
	Features       ID = "features"
	ValidationPlan ID = "validationPlan"
)

// ErrMissingPrecondition indicates required upstream stage data is absent.
var ErrMissingPrecondition = errors.New("missing stage precondition")

// ErrUnknownStage indicates an unrecognized stage identifier.
var ErrUnknownStage = errors.New("unknown stage")

// Snapshot is a materialized read of one project and all its stage slots,
// taken at the start of an operation. Derived state and prompt contexts are
// computed from it, never from cached copies.
type Snapshot struct {
	Project     project.Project
	Competitors []competitor.Competitor
	Gaps        []market.Gap
	Features    []feature.Feature
	Steps       []plan.Step
}

// Definition describes one stage: its position in the pipeline, whether
// completing it consumes a credit, and how to assemble its prompt context.
type Definition struct {
	ID        ID
	Preceding ID // empty for the first stage
	Charged   bool

	complete     func(Snapshot) bool
	buildContext func(Snapshot) (completion.PromptContext, error)
}

// IsComplete reports whether the stage's output slot is non-empty.
func (d Definition) IsComplete(s Snapshot) bool {
	return d.complete(s)
}

// BuildContext assembles the prompt context for generating this stage, or
// returns ErrMissingPrecondition when upstream slots are empty.
func (d Definition) BuildContext(s Snapshot) (completion.PromptContext, error) {
	if d.buildContext == nil {
		return completion.PromptContext{}, ErrMissingPrecondition
	}
	return d.buildContext(s)
}

var ordered = []Definition{
	{
		ID:      Idea,
		Charged: false,
		complete: func(s Snapshot) bool {
			return s.Project.Idea != ""
		},
	},
	{
		ID:        Competitors,
		Preceding: Idea,
		Charged:   true,
		complete: func(s Snapshot) bool {
			return len(s.Competitors) > 0
		},
		buildContext: func(s Snapshot) (completion.PromptContext, error) {
			if s.Project.Idea == "" {
				return completion.PromptContext{}, ErrMissingPrecondition
			}
			return baseContext(s), nil
		},
	},
	{
		ID:        MarketGaps,
		Preceding: Competitors,
		Charged:   true,
		complete: func(s Snapshot) bool {
			return len(s.Gaps) > 0
		},
		buildContext: func(s Snapshot) (completion.PromptContext, error) {
			if s.Project.Idea == "" || len(s.Competitors) == 0 {
				return completion.PromptContext{}, ErrMissingPrecondition
			}
			pc := baseContext(s)
			pc.Competitors = competitorInfos(s.Competitors)
			return pc, nil
		},
	},
	{
		ID:        Features,
		Preceding: MarketGaps,
		Charged:   true,
		complete: func(s Snapshot) bool {
			return len(s.Features) > 0
		},
		buildContext: func(s Snapshot) (completion.PromptContext, error) {
			if s.Project.Idea == "" || len(s.Gaps) == 0 {
				return completion.PromptContext{}, ErrMissingPrecondition
			}
			pc := baseContext(s)
			pc.Competitors = competitorInfos(s.Competitors)
			pc.Gaps = gapInfos(s.Gaps)
			if idx := s.Project.SelectedGapIndex; idx != nil && *idx >= 0 && *idx < len(pc.Gaps) {
				selected := pc.Gaps[*idx]
				pc.SelectedGap = &selected
			}
			return pc, nil
		},
	},
	{
		ID:        ValidationPlan,
		Preceding: Features,
		Charged:   true,
		complete: func(s Snapshot) bool {
			return len(s.Steps) > 0
		},
		buildContext: func(s Snapshot) (completion.PromptContext, error) {
			if s.Project.Idea == "" || len(s.Features) == 0 {
				return completion.PromptContext{}, ErrMissingPrecondition
			}
			pc := baseContext(s)
			pc.Gaps = gapInfos(s.Gaps)
			if idx := s.Project.SelectedGapIndex; idx != nil && *idx >= 0 && *idx < len(pc.Gaps) {
				selected := pc.Gaps[*idx]
				pc.SelectedGap = &selected
			}
			pc.Features = featureDrafts(s.Features)
			return pc, nil
		},
	},
}

// All returns the ordered stage definitions.
func All() []Definition {
	return ordered
}

// Get returns the definition for id, or ErrUnknownStage.
func Get(id ID) (Definition, error) {
	for _, d := range ordered {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, ErrUnknownStage
}

// Derive returns the highest in-order completed stage, or "" when the
// pipeline has not started. Slots filled out of order do not advance the
// derived state: completion only counts while every preceding stage is also
// complete.
func Derive(s Snapshot) ID {
	var current ID
	for _, d := range ordered {
		if !d.IsComplete(s) {
			break
		}
		current = d.ID
	}
	return current
}

// Next returns the first stage whose slot is empty while all preceding
// stages are complete, or "" when the pipeline is finished.
func Next(s Snapshot) ID {
	for _, d := range ordered {
		if !d.IsComplete(s) {
			return d.ID
		}
	}
	return ""
}

// Flags returns the per-stage completion flags in pipeline order.
func Flags(s Snapshot) map[ID]bool {
	flags := make(map[ID]bool, len(ordered))
	for _, d := range ordered {
		flags[d.ID] = d.IsComplete(s)
	}
	return flags
}

func baseContext(s Snapshot) completion.PromptContext {
	return completion.PromptContext{
		Title: s.Project.Title,
		Idea:  s.Project.Idea,
	}
}

func competitorInfos(list []competitor.Competitor) []completion.CompetitorInfo {
	infos := make([]completion.CompetitorInfo, 0, len(list))
	for _, c := range list {
		infos = append(infos, completion.CompetitorInfo{
			Name:        c.Name,
			Website:     c.Website,
			Description: c.Description,
		})
	}
	return infos
}

func gapInfos(list []market.Gap) []completion.GapInfo {
	infos := make([]completion.GapInfo, 0, len(list))
	for _, g := range list {
		infos = append(infos, completion.GapInfo{
			Gap:         g.Gap,
			Positioning: g.Positioning,
			Score:       g.Score,
			Rationale:   g.Rationale,
		})
	}
	return infos
}

func featureDrafts(list []feature.Feature) []completion.FeatureDraft {
	drafts := make([]completion.FeatureDraft, 0, len(list))
	for _, f := range list {
		drafts = append(drafts, completion.FeatureDraft{
			Title:       f.Title,
			Description: f.Description,
			Priority:    string(f.Priority),
		})
	}
	return drafts
}
