package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/repository"
	"github.com/venturly/venturly/internal/repository/mocks"
)

func TestCreate(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Create", mock.Anything, "owner1", mock.AnythingOfType("*project.Project")).Return(nil)

	proj, err := svc.Create(context.Background(), "owner1", project.CreateRequest{Title: "My Idea"})
	require.NoError(t, err)
	require.Equal(t, "My Idea", proj.Title)
	require.Equal(t, "owner1", proj.OwnerID)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, int64(0), proj.Version)
	repo.AssertExpectations(t)
}

func TestCreate_EmptyTitle(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	_, err := svc.Create(context.Background(), "owner1", project.CreateRequest{Title: "   "})
	require.ErrorIs(t, err, project.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_ExplicitID(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Create", mock.Anything, "owner1", mock.AnythingOfType("*project.Project")).Return(nil)

	proj, err := svc.Create(context.Background(), "owner1", project.CreateRequest{ID: "given", Title: "T"})
	require.NoError(t, err)
	require.Equal(t, "given", proj.ID)
}

func TestRename(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Get", mock.Anything, "owner1", "p1").
		Return(&project.Project{ID: "p1", Title: "Old", Version: 3}, nil)
	repo.On("SetTitle", mock.Anything, "owner1", "p1", "New", int64(3)).Return(nil)

	proj, err := svc.Rename(context.Background(), "owner1", "p1", "New")
	require.NoError(t, err)
	require.Equal(t, "New", proj.Title)
	require.Equal(t, int64(4), proj.Version)
	repo.AssertExpectations(t)
}

func TestRename_NotFound(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("Get", mock.Anything, "owner1", "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.Rename(context.Background(), "owner1", "ghost", "New")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestList(t *testing.T) {
	repo := new(mocks.ProjectRepository)
	svc := project.NewService(repo, nil)

	repo.On("List", mock.Anything, "owner1").
		Return([]project.Summary{{ID: "p1", Title: "A"}, {ID: "p2", Title: "B"}}, nil)

	list, err := svc.List(context.Background(), "owner1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}
