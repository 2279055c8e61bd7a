package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturly/venturly/internal/repository/errs"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID    string
	Title string
}

// Create creates a new project with empty stage slots.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	proj := &Project{
		ID:        id,
		OwnerID:   ownerID,
		Title:     req.Title,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, ownerID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Rename updates the project title.
func (s *Service) Rename(ctx context.Context, ownerID, id, title string) (*Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetTitle(ctx, ownerID, id, title, current.Version); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("renaming project: %w", err)
	}

	current.Title = title
	current.Version++
	return current, nil
}

// List returns project summaries for an owner.
func (s *Service) List(ctx context.Context, ownerID string) ([]Summary, error) {
	return s.repo.List(ctx, ownerID)
}
