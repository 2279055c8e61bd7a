package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/domain/market"
	"github.com/venturly/venturly/internal/repository"
)

func TestGapRepository_ReplaceAndList(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	seedProject(t, projects, "owner1", "p1")
	repo := NewGapRepository(db)
	ctx := context.Background()

	gaps := []market.Gap{
		{ProjectID: "p1", Position: 0, Gap: "Underserved SMBs", Positioning: "Go down-market", Score: 8, Rationale: "Big cohort"},
		{ProjectID: "p1", Position: 1, Gap: "No mobile offering", Positioning: "Mobile first", Score: 6, Rationale: "Weaker signal"},
	}
	require.NoError(t, repo.Replace(ctx, "owner1", "p1", 0, gaps))

	list, err := repo.ListByProject(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Underserved SMBs", list[0].Gap)
	require.Equal(t, 8, list[0].Score)

	// Other owners see nothing
	list, err = repo.ListByProject(ctx, "owner2", "p1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestGapRepository_ReplaceClearsSelection(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	seedProject(t, projects, "owner1", "p1")
	repo := NewGapRepository(db)
	ctx := context.Background()

	gaps := []market.Gap{
		{ProjectID: "p1", Position: 0, Gap: "Gap A", Score: 7},
		{ProjectID: "p1", Position: 1, Gap: "Gap B", Score: 5},
	}
	require.NoError(t, repo.Replace(ctx, "owner1", "p1", 0, gaps))

	idx := 1
	require.NoError(t, projects.SetSelectedGap(ctx, "owner1", "p1", &idx, 1))

	// Regenerating the list clears the stale selection atomically
	require.NoError(t, repo.Replace(ctx, "owner1", "p1", 2, []market.Gap{
		{ProjectID: "p1", Position: 0, Gap: "Gap C", Score: 9},
	}))

	proj, err := projects.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Nil(t, proj.SelectedGapIndex)
	require.Equal(t, int64(3), proj.Version)
}

func TestGapRepository_ReplaceConflict(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	seedProject(t, projects, "owner1", "p1")
	repo := NewGapRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "owner1", "p1", 0, []market.Gap{
		{ProjectID: "p1", Position: 0, Gap: "Original", Score: 5},
	}))

	err := repo.Replace(ctx, "owner1", "p1", 0, []market.Gap{
		{ProjectID: "p1", Position: 0, Gap: "Stale", Score: 1},
	})
	require.Equal(t, repository.ErrConflict, err)

	err = repo.Replace(ctx, "owner1", "ghost", 0, nil)
	require.Equal(t, repository.ErrNotFound, err)

	list, err := repo.ListByProject(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Original", list[0].Gap)
}
