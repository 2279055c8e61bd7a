package credit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/repository"
	"github.com/venturly/venturly/internal/repository/mocks"
)

func TestLimitFor(t *testing.T) {
	limit, unlimited := credit.LimitFor(credit.TierFree)
	require.Equal(t, 4, limit)
	require.False(t, unlimited)

	limit, unlimited = credit.LimitFor(credit.TierStarter)
	require.Equal(t, 10, limit)
	require.False(t, unlimited)

	_, unlimited = credit.LimitFor(credit.TierPro)
	require.True(t, unlimited)

	// Unknown tiers fall back to the free budget.
	limit, unlimited = credit.LimitFor(credit.Tier("mystery"))
	require.Equal(t, 4, limit)
	require.False(t, unlimited)
}

func TestRemaining(t *testing.T) {
	remaining, unlimited := credit.Remaining(1, credit.TierFree)
	require.Equal(t, 3, remaining)
	require.False(t, unlimited)

	remaining, _ = credit.Remaining(9, credit.TierFree)
	require.Equal(t, 0, remaining)

	_, unlimited = credit.Remaining(100, credit.TierPro)
	require.True(t, unlimited)
}

func TestTryConsume(t *testing.T) {
	counters := new(mocks.ProjectRepository)
	tiers := new(mocks.OwnerRepository)
	ledger := credit.NewLedger(counters, tiers, nil)

	tiers.On("CurrentTier", mock.Anything, "owner1").Return(credit.TierFree, nil)
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(2, nil)
	counters.On("ConsumeCredit", mock.Anything, "owner1", "p1", 2, mock.AnythingOfType("*credit.Charge")).Return(nil)

	charge, err := ledger.TryConsume(context.Background(), "owner1", "p1", "competitors")
	require.NoError(t, err)
	require.NotEmpty(t, charge.ID)
	require.Equal(t, "p1", charge.ProjectID)
	require.Equal(t, "competitors", charge.StageTag)
	require.Equal(t, credit.OutcomePending, charge.Outcome)
	counters.AssertExpectations(t)
}

func TestTryConsume_AtLimit(t *testing.T) {
	counters := new(mocks.ProjectRepository)
	tiers := new(mocks.OwnerRepository)
	ledger := credit.NewLedger(counters, tiers, nil)

	tiers.On("CurrentTier", mock.Anything, "owner1").Return(credit.TierFree, nil)
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(4, nil)

	_, err := ledger.TryConsume(context.Background(), "owner1", "p1", "features")
	require.ErrorIs(t, err, credit.ErrOutOfCredits)
	counters.AssertNotCalled(t, "ConsumeCredit")
}

func TestTryConsume_ProUncapped(t *testing.T) {
	counters := new(mocks.ProjectRepository)
	tiers := new(mocks.OwnerRepository)
	ledger := credit.NewLedger(counters, tiers, nil)

	tiers.On("CurrentTier", mock.Anything, "owner1").Return(credit.TierPro, nil)
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(1000, nil)
	counters.On("ConsumeCredit", mock.Anything, "owner1", "p1", 1000, mock.AnythingOfType("*credit.Charge")).Return(nil)

	charge, err := ledger.TryConsume(context.Background(), "owner1", "p1", "marketGaps")
	require.NoError(t, err)
	require.Equal(t, credit.OutcomePending, charge.Outcome)
}

func TestTryConsume_RetriesOnConflict(t *testing.T) {
	counters := new(mocks.ProjectRepository)
	tiers := new(mocks.OwnerRepository)
	ledger := credit.NewLedger(counters, tiers, nil)

	// A concurrent consumer wins the first write; the re-read sees the new
	// counter and the second write lands.
	tiers.On("CurrentTier", mock.Anything, "owner1").Return(credit.TierStarter, nil)
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(5, nil).Once()
	counters.On("ConsumeCredit", mock.Anything, "owner1", "p1", 5, mock.AnythingOfType("*credit.Charge")).
		Return(repository.ErrConflict).Once()
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(6, nil).Once()
	counters.On("ConsumeCredit", mock.Anything, "owner1", "p1", 6, mock.AnythingOfType("*credit.Charge")).
		Return(nil).Once()

	charge, err := ledger.TryConsume(context.Background(), "owner1", "p1", "features")
	require.NoError(t, err)
	require.NotNil(t, charge)
	counters.AssertExpectations(t)
}

func TestTryConsume_ConflictExhausted(t *testing.T) {
	counters := new(mocks.ProjectRepository)
	tiers := new(mocks.OwnerRepository)
	ledger := credit.NewLedger(counters, tiers, nil)

	tiers.On("CurrentTier", mock.Anything, "owner1").Return(credit.TierPro, nil)
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(0, nil)
	counters.On("ConsumeCredit", mock.Anything, "owner1", "p1", 0, mock.AnythingOfType("*credit.Charge")).
		Return(repository.ErrConflict)

	_, err := ledger.TryConsume(context.Background(), "owner1", "p1", "features")
	require.ErrorIs(t, err, credit.ErrConcurrentConflict)
}

func TestSummary(t *testing.T) {
	counters := new(mocks.ProjectRepository)
	tiers := new(mocks.OwnerRepository)
	ledger := credit.NewLedger(counters, tiers, nil)

	tiers.On("CurrentTier", mock.Anything, "owner1").Return(credit.TierStarter, nil)
	counters.On("Credits", mock.Anything, "owner1", "p1").Return(7, nil)

	summary, err := ledger.Summary(context.Background(), "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, credit.Summary{
		Tier:      credit.TierStarter,
		Limit:     10,
		Used:      7,
		Remaining: 3,
	}, summary)
}
