package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/domain/project"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, ownerID string, proj *project.Project) error {
	args := m.Called(ctx, ownerID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, ownerID, id string) (*project.Project, error) {
	args := m.Called(ctx, ownerID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, ownerID string) ([]project.Summary, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) SetTitle(ctx context.Context, ownerID, id, title string, expectedVersion int64) error {
	args := m.Called(ctx, ownerID, id, title, expectedVersion)
	return args.Error(0)
}

func (m *ProjectRepository) SetIdea(ctx context.Context, ownerID, id, idea string, expectedVersion int64) error {
	args := m.Called(ctx, ownerID, id, idea, expectedVersion)
	return args.Error(0)
}

func (m *ProjectRepository) SetSelectedGap(ctx context.Context, ownerID, id string, index *int, expectedVersion int64) error {
	args := m.Called(ctx, ownerID, id, index, expectedVersion)
	return args.Error(0)
}

func (m *ProjectRepository) Credits(ctx context.Context, ownerID, projectID string) (int, error) {
	args := m.Called(ctx, ownerID, projectID)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepository) ConsumeCredit(ctx context.Context, ownerID, projectID string, expectedUsed int, charge *credit.Charge) error {
	args := m.Called(ctx, ownerID, projectID, expectedUsed, charge)
	return args.Error(0)
}

// CompetitorRepository is a mock for repository.CompetitorRepository.
type CompetitorRepository struct {
	mock.Mock
}

func (m *CompetitorRepository) Insert(ctx context.Context, ownerID string, c *competitor.Competitor) error {
	args := m.Called(ctx, ownerID, c)
	return args.Error(0)
}

func (m *CompetitorRepository) Get(ctx context.Context, ownerID, id string) (*competitor.Competitor, error) {
	args := m.Called(ctx, ownerID, id)
	if c, ok := args.Get(0).(*competitor.Competitor); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompetitorRepository) Update(ctx context.Context, ownerID string, c *competitor.Competitor) error {
	args := m.Called(ctx, ownerID, c)
	return args.Error(0)
}

func (m *CompetitorRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *CompetitorRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]competitor.Competitor, error) {
	args := m.Called(ctx, ownerID, projectID)
	if list, ok := args.Get(0).([]competitor.Competitor); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompetitorRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []competitor.Competitor) error {
	args := m.Called(ctx, ownerID, projectID, expectedVersion, items)
	return args.Error(0)
}

// GapRepository is a mock for repository.GapRepository.
type GapRepository struct {
	mock.Mock
}

func (m *GapRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]market.Gap, error) {
	args := m.Called(ctx, ownerID, projectID)
	if list, ok := args.Get(0).([]market.Gap); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GapRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, gaps []market.Gap) error {
	args := m.Called(ctx, ownerID, projectID, expectedVersion, gaps)
	return args.Error(0)
}

// FeatureRepository is a mock for repository.FeatureRepository.
type FeatureRepository struct {
	mock.Mock
}

func (m *FeatureRepository) Insert(ctx context.Context, ownerID string, f *feature.Feature) error {
	args := m.Called(ctx, ownerID, f)
	return args.Error(0)
}

func (m *FeatureRepository) Get(ctx context.Context, ownerID, id string) (*feature.Feature, error) {
	args := m.Called(ctx, ownerID, id)
	if f, ok := args.Get(0).(*feature.Feature); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FeatureRepository) Update(ctx context.Context, ownerID string, f *feature.Feature) error {
	args := m.Called(ctx, ownerID, f)
	return args.Error(0)
}

func (m *FeatureRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *FeatureRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]feature.Feature, error) {
	args := m.Called(ctx, ownerID, projectID)
	if list, ok := args.Get(0).([]feature.Feature); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FeatureRepository) ListFiltered(ctx context.Context, ownerID, projectID string, opts feature.ListOptions) ([]feature.Feature, error) {
	args := m.Called(ctx, ownerID, projectID, opts)
	if list, ok := args.Get(0).([]feature.Feature); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FeatureRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []feature.Feature) error {
	args := m.Called(ctx, ownerID, projectID, expectedVersion, items)
	return args.Error(0)
}

// StepRepository is a mock for repository.StepRepository.
type StepRepository struct {
	mock.Mock
}

func (m *StepRepository) Insert(ctx context.Context, ownerID string, st *plan.Step) error {
	args := m.Called(ctx, ownerID, st)
	return args.Error(0)
}

func (m *StepRepository) Get(ctx context.Context, ownerID, id string) (*plan.Step, error) {
	args := m.Called(ctx, ownerID, id)
	if st, ok := args.Get(0).(*plan.Step); ok {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StepRepository) Update(ctx context.Context, ownerID string, st *plan.Step) error {
	args := m.Called(ctx, ownerID, st)
	return args.Error(0)
}

func (m *StepRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *StepRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]plan.Step, error) {
	args := m.Called(ctx, ownerID, projectID)
	if list, ok := args.Get(0).([]plan.Step); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StepRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []plan.Step) error {
	args := m.Called(ctx, ownerID, projectID, expectedVersion, items)
	return args.Error(0)
}

// ChargeRepository is a mock for repository.ChargeRepository.
type ChargeRepository struct {
	mock.Mock
}

func (m *ChargeRepository) ListCharges(ctx context.Context, ownerID, projectID string) ([]credit.Charge, error) {
	args := m.Called(ctx, ownerID, projectID)
	if list, ok := args.Get(0).([]credit.Charge); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChargeRepository) FindPendingCharge(ctx context.Context, ownerID, projectID, stageTag string) (*credit.Charge, error) {
	args := m.Called(ctx, ownerID, projectID, stageTag)
	if ch, ok := args.Get(0).(*credit.Charge); ok {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChargeRepository) SettleCharge(ctx context.Context, chargeID string, outcome credit.ChargeOutcome) error {
	args := m.Called(ctx, chargeID, outcome)
	return args.Error(0)
}

// OwnerRepository is a mock for repository.OwnerRepository.
type OwnerRepository struct {
	mock.Mock
}

func (m *OwnerRepository) CurrentTier(ctx context.Context, ownerID string) (credit.Tier, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(credit.Tier), args.Error(1)
}

func (m *OwnerRepository) SetTier(ctx context.Context, ownerID string, tier credit.Tier) error {
	args := m.Called(ctx, ownerID, tier)
	return args.Error(0)
}
