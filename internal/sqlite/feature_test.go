package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/repository"
)

func seedFeature(t *testing.T, repo *FeatureRepository, id string, status feature.Status, priority feature.Priority) {
	t.Helper()

	f := &feature.Feature{
		ID:         id,
		ProjectID:  "p1",
		Title:      id,
		Status:     status,
		Priority:   priority,
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
	}
	require.NoError(t, repo.Insert(context.Background(), "owner1", f))
}

func TestFeatureRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "owner1", "p1")
	repo := NewFeatureRepository(db)
	ctx := context.Background()

	f := &feature.Feature{
		ID:          "f1",
		ProjectID:   "p1",
		Title:       "Onboarding flow",
		Description: "First-run experience",
		Status:      feature.StatusPlanned,
		Priority:    feature.PriorityHigh,
		CreatedAt:   time.Now(),
		ModifiedAt:  time.Now(),
	}
	require.NoError(t, repo.Insert(ctx, "owner1", f))

	retrieved, err := repo.Get(ctx, "owner1", "f1")
	require.NoError(t, err)
	require.Equal(t, feature.StatusPlanned, retrieved.Status)
	require.Equal(t, feature.PriorityHigh, retrieved.Priority)

	f.Status = feature.StatusInProgress
	f.ModifiedAt = time.Now()
	require.NoError(t, repo.Update(ctx, "owner1", f))

	retrieved, err = repo.Get(ctx, "owner1", "f1")
	require.NoError(t, err)
	require.Equal(t, feature.StatusInProgress, retrieved.Status)

	require.NoError(t, repo.Delete(ctx, "owner1", "f1"))
	_, err = repo.Get(ctx, "owner1", "f1")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestFeatureRepository_ListFiltered(t *testing.T) {
	db := NewTestDB(t)
	seedProject(t, NewProjectRepository(db), "owner1", "p1")
	repo := NewFeatureRepository(db)
	ctx := context.Background()

	seedFeature(t, repo, "f1", feature.StatusPlanned, feature.PriorityHigh)
	seedFeature(t, repo, "f2", feature.StatusInProgress, feature.PriorityHigh)
	seedFeature(t, repo, "f3", feature.StatusDone, feature.PriorityLow)

	// No filters: everything
	list, err := repo.ListFiltered(ctx, "owner1", "p1", feature.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Status filter
	list, err = repo.ListFiltered(ctx, "owner1", "p1", feature.ListOptions{
		Statuses: []feature.Status{feature.StatusPlanned, feature.StatusInProgress},
	})
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Combined filters
	list, err = repo.ListFiltered(ctx, "owner1", "p1", feature.ListOptions{
		Statuses:   []feature.Status{feature.StatusDone},
		Priorities: []feature.Priority{feature.PriorityLow},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "f3", list[0].ID)

	// Filter matching nothing
	list, err = repo.ListFiltered(ctx, "owner1", "p1", feature.ListOptions{
		Priorities: []feature.Priority{feature.PriorityMedium},
	})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestFeatureRepository_Replace(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	seedProject(t, projects, "owner1", "p1")
	repo := NewFeatureRepository(db)
	ctx := context.Background()

	seedFeature(t, repo, "manual", feature.StatusPlanned, feature.PriorityMedium)

	gen := []feature.Feature{
		{ID: "g1", ProjectID: "p1", Title: "Generated One", Status: feature.StatusPlanned,
			Priority: feature.PriorityHigh, AIGenerated: true, CreatedAt: time.Now(), ModifiedAt: time.Now()},
	}
	require.NoError(t, repo.Replace(ctx, "owner1", "p1", 0, gen))

	list, err := repo.ListByProject(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Generated One", list[0].Title)
	require.True(t, list[0].AIGenerated)
}
