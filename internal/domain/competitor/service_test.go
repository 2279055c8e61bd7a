package competitor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/repository"
	"github.com/venturly/venturly/internal/repository/mocks"
)

func TestAdd(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("ListByProject", mock.Anything, "owner1", "p1").
		Return([]competitor.Competitor{{ID: "c1"}, {ID: "c2"}}, nil)
	repo.On("Insert", mock.Anything, "owner1", mock.AnythingOfType("*competitor.Competitor")).Return(nil)

	c, err := svc.Add(context.Background(), "owner1", competitor.AddRequest{
		ProjectID: "p1", Name: "  Acme  ", Description: "Dashboards",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme", c.Name)
	require.Equal(t, 2, c.Position)
	require.False(t, c.AIGenerated)
	repo.AssertExpectations(t)
}

func TestAdd_RequiresNameOrWebsite(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	_, err := svc.Add(context.Background(), "owner1", competitor.AddRequest{ProjectID: "p1"})
	require.ErrorIs(t, err, competitor.ErrInvalidInput)
	repo.AssertNotCalled(t, "Insert")
}

func TestAdd_WebsiteOnlyFallsBackToWebsiteName(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("ListByProject", mock.Anything, "owner1", "p1").Return([]competitor.Competitor{}, nil)
	repo.On("Insert", mock.Anything, "owner1", mock.AnythingOfType("*competitor.Competitor")).Return(nil)

	c, err := svc.Add(context.Background(), "owner1", competitor.AddRequest{
		ProjectID: "p1", Website: "acme.example",
	})
	require.NoError(t, err)
	require.Equal(t, "acme.example", c.Name)
}

func TestAdd_EnrichesFromWebsite(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head>
			<title>Acme Analytics</title>
			<meta name="description" content="Dashboards for teams">
		</head><body></body></html>`))
	}))
	t.Cleanup(page.Close)

	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, competitor.NewEnricher(2*time.Second), nil)

	repo.On("ListByProject", mock.Anything, "owner1", "p1").Return([]competitor.Competitor{}, nil)
	repo.On("Insert", mock.Anything, "owner1", mock.AnythingOfType("*competitor.Competitor")).Return(nil)

	c, err := svc.Add(context.Background(), "owner1", competitor.AddRequest{
		ProjectID: "p1", Website: page.URL,
	})
	require.NoError(t, err)
	require.Equal(t, "Acme Analytics", c.Name)
	require.Equal(t, "Dashboards for teams", c.Description)
}

func TestAdd_EnrichmentFailureIgnored(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(page.Close)

	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, competitor.NewEnricher(2*time.Second), nil)

	repo.On("ListByProject", mock.Anything, "owner1", "p1").Return([]competitor.Competitor{}, nil)
	repo.On("Insert", mock.Anything, "owner1", mock.AnythingOfType("*competitor.Competitor")).Return(nil)

	c, err := svc.Add(context.Background(), "owner1", competitor.AddRequest{
		ProjectID: "p1", Website: page.URL,
	})
	require.NoError(t, err)
	require.Equal(t, page.URL, c.Name)
}

func TestAdd_UnknownProject(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("ListByProject", mock.Anything, "owner1", "ghost").Return([]competitor.Competitor{}, nil)
	repo.On("Insert", mock.Anything, "owner1", mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := svc.Add(context.Background(), "owner1", competitor.AddRequest{ProjectID: "ghost", Name: "Acme"})
	require.ErrorIs(t, err, competitor.ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("Get", mock.Anything, "owner1", "c1").
		Return(&competitor.Competitor{ID: "c1", Name: "Old", Website: "old.example"}, nil)
	repo.On("Update", mock.Anything, "owner1", mock.AnythingOfType("*competitor.Competitor")).Return(nil)

	name := "New"
	c, err := svc.Update(context.Background(), "owner1", competitor.UpdateRequest{ID: "c1", Name: &name})
	require.NoError(t, err)
	require.Equal(t, "New", c.Name)
	require.Equal(t, "old.example", c.Website)
}

func TestUpdate_BlankNameRejected(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("Get", mock.Anything, "owner1", "c1").
		Return(&competitor.Competitor{ID: "c1", Name: "Old"}, nil)

	blank := "  "
	_, err := svc.Update(context.Background(), "owner1", competitor.UpdateRequest{ID: "c1", Name: &blank})
	require.ErrorIs(t, err, competitor.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("Get", mock.Anything, "owner1", "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.Update(context.Background(), "owner1", competitor.UpdateRequest{ID: "ghost"})
	require.ErrorIs(t, err, competitor.ErrCompetitorNotFound)
}

func TestRemove(t *testing.T) {
	repo := new(mocks.CompetitorRepository)
	svc := competitor.NewService(repo, nil, nil)

	repo.On("Delete", mock.Anything, "owner1", "c1").Return(nil)
	require.NoError(t, svc.Remove(context.Background(), "owner1", "c1"))

	repo.On("Delete", mock.Anything, "owner1", "ghost").Return(repository.ErrNotFound)
	require.ErrorIs(t, svc.Remove(context.Background(), "owner1", "ghost"), competitor.ErrCompetitorNotFound)
}
