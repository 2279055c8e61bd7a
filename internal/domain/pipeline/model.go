package pipeline

import (
	"time"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/domain/stage"
)

// SubmitRequest describes a submit or rerun of one stage.
type SubmitRequest struct {
	ProjectID string
	Stage     stage.ID
	// Idea is the captured idea text; required for the idea stage, ignored
	// elsewhere.
	Idea string
	// Guidance is optional founder steering passed into the prompt context
	// of AI stages.
	Guidance string
}

// StageStatus is one stage's completion flag.
type StageStatus struct {
	ID       stage.ID `json:"id"`
	Complete bool     `json:"complete"`
	Charged  bool     `json:"charged"`
}

// OrphanedCharge reports a credit consumed for a stage whose slot is still
// empty: either a crash between consume and persist, or a failed generation
// attempt not yet retried. It is reported, never silently re-billed.
type OrphanedCharge struct {
	ChargeID  string    `json:"charge_id"`
	Stage     string    `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectState is the full derived view of a project returned by every
// facade operation.
type ProjectState struct {
	Project      project.Project         `json:"project"`
	DerivedStage stage.ID                `json:"derived_stage"`
	NextStage    stage.ID                `json:"next_stage,omitempty"`
	Stages       []StageStatus           `json:"stages"`
	Credits      credit.Summary          `json:"credits"`
	Competitors  []competitor.Competitor `json:"competitors"`
	Gaps         []market.Gap            `json:"gaps"`
	Features     []feature.Feature       `json:"features"`
	Steps        []plan.Step             `json:"steps"`
	Orphaned     []OrphanedCharge        `json:"orphaned_charges,omitempty"`
}
