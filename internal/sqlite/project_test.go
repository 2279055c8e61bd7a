package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/repository"
)

func seedProject(t *testing.T, repo *ProjectRepository, ownerID, id string) *project.Project {
	t.Helper()

	proj := &project.Project{
		ID:        id,
		OwnerID:   ownerID,
		Title:     "Test Project",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := repo.Create(context.Background(), ownerID, proj)
	require.NoError(t, err)
	return proj
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	retrieved, err := repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", retrieved.ID)
	require.Equal(t, "owner1", retrieved.OwnerID)
	require.Equal(t, "Test Project", retrieved.Title)
	require.Equal(t, "", retrieved.Idea)
	require.Nil(t, retrieved.SelectedGapIndex)
	require.Equal(t, 0, retrieved.CreditsUsed)
	require.Equal(t, int64(0), retrieved.Version)

	_, err = repo.Get(ctx, "owner1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_CreateDuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	dup := &project.Project{
		ID:        "p1",
		OwnerID:   "owner1",
		Title:     "Duplicate",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := repo.Create(ctx, "owner1", dup)
	require.Equal(t, repository.ErrConflict, err)

	retrieved, err := repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, "Test Project", retrieved.Title)
}

func TestProjectRepository_OwnerIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	// Another owner cannot see or touch the project
	_, err := repo.Get(ctx, "owner2", "p1")
	require.Equal(t, repository.ErrNotFound, err)

	err = repo.SetTitle(ctx, "owner2", "p1", "Hijacked", 0)
	require.Equal(t, repository.ErrNotFound, err)

	list, err := repo.List(ctx, "owner2")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestProjectRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")
	require.NoError(t, repo.SetIdea(ctx, "owner1", "p1", "An idea", 0))

	_, err := db.ExecContext(ctx,
		`INSERT INTO competitors (id, project_id, name, position) VALUES (?, ?, ?, ?)`,
		"c1", "p1", "Acme", 0)
	require.NoError(t, err)

	list, err := repo.List(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "p1", list[0].ID)
	require.True(t, list[0].IdeaCaptured)
	require.Equal(t, 1, list[0].CompetitorCount)
	require.Equal(t, 0, list[0].GapCount)
}

func TestProjectRepository_VersionConflict(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	// First write at version 0 succeeds and bumps to 1
	err := repo.SetTitle(ctx, "owner1", "p1", "Renamed", 0)
	require.NoError(t, err)

	// A second write still claiming version 0 loses
	err = repo.SetTitle(ctx, "owner1", "p1", "Stale", 0)
	require.Equal(t, repository.ErrConflict, err)

	retrieved, err := repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", retrieved.Title)
	require.Equal(t, int64(1), retrieved.Version)
}

func TestProjectRepository_SetSelectedGap(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	idx := 2
	err := repo.SetSelectedGap(ctx, "owner1", "p1", &idx, 0)
	require.NoError(t, err)

	retrieved, err := repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.NotNil(t, retrieved.SelectedGapIndex)
	require.Equal(t, 2, *retrieved.SelectedGapIndex)

	// Clearing the pointer
	err = repo.SetSelectedGap(ctx, "owner1", "p1", nil, retrieved.Version)
	require.NoError(t, err)

	retrieved, err = repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Nil(t, retrieved.SelectedGapIndex)
}

func TestProjectRepository_ConsumeCredit(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	charge := &credit.Charge{
		ID:        "ch1",
		ProjectID: "p1",
		StageTag:  "competitors",
		Outcome:   credit.OutcomePending,
		CreatedAt: time.Now(),
	}
	err := repo.ConsumeCredit(ctx, "owner1", "p1", 0, charge)
	require.NoError(t, err)

	used, err := repo.Credits(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, 1, used)

	// The charge row landed in the same transaction
	var outcome string
	err = db.QueryRowContext(ctx,
		`SELECT outcome FROM credit_charges WHERE id = ?`, "ch1").Scan(&outcome)
	require.NoError(t, err)
	require.Equal(t, "pending", outcome)
}

func TestProjectRepository_ConsumeCreditConflict(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "owner1", "p1")

	charge := &credit.Charge{
		ID: "ch1", ProjectID: "p1", StageTag: "competitors",
		Outcome: credit.OutcomePending, CreatedAt: time.Now(),
	}
	require.NoError(t, repo.ConsumeCredit(ctx, "owner1", "p1", 0, charge))

	// A racing consume that read the old counter loses, and its charge row
	// is never written
	stale := &credit.Charge{
		ID: "ch2", ProjectID: "p1", StageTag: "competitors",
		Outcome: credit.OutcomePending, CreatedAt: time.Now(),
	}
	err := repo.ConsumeCredit(ctx, "owner1", "p1", 0, stale)
	require.Equal(t, repository.ErrConflict, err)

	used, err := repo.Credits(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, 1, used)

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM credit_charges`).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// A vanished project reports not found, not conflict
	err = repo.ConsumeCredit(ctx, "owner1", "ghost", 0, stale)
	require.Equal(t, repository.ErrNotFound, err)
}
