package repository

import (
	"context"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
)

// ProjectRepository manages project persistence. Every query is scoped to
// ownerID; ownership is the store's access predicate, not the engine's.
// Writes taking expectedVersion are conditional: they fail with ErrConflict
// when the row's version moved past the observed value.
type ProjectRepository interface {
	Create(ctx context.Context, ownerID string, proj *project.Project) error
	Get(ctx context.Context, ownerID, id string) (*project.Project, error)
	List(ctx context.Context, ownerID string) ([]project.Summary, error)
	SetTitle(ctx context.Context, ownerID, id, title string, expectedVersion int64) error
	SetIdea(ctx context.Context, ownerID, id, idea string, expectedVersion int64) error
	SetSelectedGap(ctx context.Context, ownerID, id string, index *int, expectedVersion int64) error
	Credits(ctx context.Context, ownerID, projectID string) (int, error)
	ConsumeCredit(ctx context.Context, ownerID, projectID string, expectedUsed int, charge *credit.Charge) error
}

// CompetitorRepository manages competitor persistence.
type CompetitorRepository interface {
	Insert(ctx context.Context, ownerID string, c *competitor.Competitor) error
	Get(ctx context.Context, ownerID, id string) (*competitor.Competitor, error)
	Update(ctx context.Context, ownerID string, c *competitor.Competitor) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByProject(ctx context.Context, ownerID, projectID string) ([]competitor.Competitor, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []competitor.Competitor) error
}

// GapRepository manages the market-gap analysis. Replace swaps the whole
// list and clears the project's selected-gap pointer in one transaction.
type GapRepository interface {
	ListByProject(ctx context.Context, ownerID, projectID string) ([]market.Gap, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, gaps []market.Gap) error
}

// FeatureRepository manages feature persistence.
type FeatureRepository interface {
	Insert(ctx context.Context, ownerID string, f *feature.Feature) error
	Get(ctx context.Context, ownerID, id string) (*feature.Feature, error)
	Update(ctx context.Context, ownerID string, f *feature.Feature) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByProject(ctx context.Context, ownerID, projectID string) ([]feature.Feature, error)
	ListFiltered(ctx context.Context, ownerID, projectID string, opts feature.ListOptions) ([]feature.Feature, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []feature.Feature) error
}

// StepRepository manages validation-step persistence.
type StepRepository interface {
	Insert(ctx context.Context, ownerID string, st *plan.Step) error
	Get(ctx context.Context, ownerID, id string) (*plan.Step, error)
	Update(ctx context.Context, ownerID string, st *plan.Step) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByProject(ctx context.Context, ownerID, projectID string) ([]plan.Step, error)
	Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []plan.Step) error
}

// ChargeRepository manages the credit consume log.
type ChargeRepository interface {
	ListCharges(ctx context.Context, ownerID, projectID string) ([]credit.Charge, error)
	FindPendingCharge(ctx context.Context, ownerID, projectID, stageTag string) (*credit.Charge, error)
	SettleCharge(ctx context.Context, chargeID string, outcome credit.ChargeOutcome) error
}

// OwnerRepository manages owner subscription state.
type OwnerRepository interface {
	CurrentTier(ctx context.Context, ownerID string) (credit.Tier, error)
	SetTier(ctx context.Context, ownerID string, tier credit.Tier) error
}
