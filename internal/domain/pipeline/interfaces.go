package pipeline

import (
	"context"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
)

// ProjectRepository provides project reads and slot-pointer writes. All
// writes are conditional on expectedVersion.
type ProjectRepository interface {
	Get(ctx context.Context, ownerID, id string) (*project.Project, error)
	SetIdea(ctx context.Context, ownerID, id, idea string, expectedVersion int64) error
	SetSelectedGap(ctx context.Context, ownerID, id string, index *int, expectedVersion int64) error
}

// CompetitorRepository provides the competitors slot.
type CompetitorRepository interface {
	ListByProject(ctx context.Context, ownerID, projectID string) ([]competitor.Competitor, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []competitor.Competitor) error
}

// GapRepository provides the market-gap slot. Replace swaps the whole
// analysis and clears the selected-gap pointer in the same transaction.
type GapRepository interface {
	ListByProject(ctx context.Context, ownerID, projectID string) ([]market.Gap, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, gaps []market.Gap) error
}

// FeatureRepository provides the features slot.
type FeatureRepository interface {
	ListByProject(ctx context.Context, ownerID, projectID string) ([]feature.Feature, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []feature.Feature) error
}

// StepRepository provides the validation-plan slot.
type StepRepository interface {
	ListByProject(ctx context.Context, ownerID, projectID string) ([]plan.Step, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []plan.Step) error
}

// CreditLedger gates generation behind the tier budget.
type CreditLedger interface {
	TryConsume(ctx context.Context, ownerID, projectID, stageTag string) (*credit.Charge, error)
	Summary(ctx context.Context, ownerID, projectID string) (credit.Summary, error)
}

// ChargeRepository reads and settles consume-log entries.
type ChargeRepository interface {
	ListCharges(ctx context.Context, ownerID, projectID string) ([]credit.Charge, error)
	FindPendingCharge(ctx context.Context, ownerID, projectID, stageTag string) (*credit.Charge, error)
	SettleCharge(ctx context.Context, chargeID string, outcome credit.ChargeOutcome) error
}
