package feature

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

// Service handles manual feature CRUD. Features may be edited after the
// pipeline has moved on; none of these operations touch pipeline state or
// credits.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a feature service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddRequest describes a manually created feature.
type AddRequest struct {
	ProjectID   string
	Title       string
	Description string
	Priority    Priority
}

// UpdateRequest describes a feature update. Nil fields are left unchanged.
type UpdateRequest struct {
	ID          string
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Add creates a user-authored feature.
func (s *Service) Add(ctx context.Context, ownerID string, req AddRequest) (*Feature, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	f := &Feature{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      StatusPlanned,
		Priority:    priority,
		AIGenerated: false,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if err := s.repo.Insert(ctx, ownerID, f); err != nil {
		if errors.Is(err, errs.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("inserting feature: %w", err)
	}

	return f, nil
}

// Update modifies a feature.
func (s *Service) Update(ctx context.Context, ownerID string, req UpdateRequest) (*Feature, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, ownerID, req.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("loading feature: %w", err)
	}

	updated := *current
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, ErrInvalidInput
		}
		updated.Status = *req.Status
	}
	if req.Priority != nil {
		if !ValidPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		updated.Priority = *req.Priority
	}
	updated.ModifiedAt = time.Now()

	if err := s.repo.Update(ctx, ownerID, &updated); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("updating feature: %w", err)
	}

	return &updated, nil
}

// Remove deletes a feature.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrFeatureNotFound
		}
		return fmt.Errorf("deleting feature: %w", err)
	}
	return nil
}

// List returns features for a project, optionally filtered by status and
// priority.
func (s *Service) List(ctx context.Context, ownerID, projectID string, opts ListOptions) ([]Feature, error) {
	if len(opts.Statuses) == 0 && len(opts.Priorities) == 0 {
		return s.repo.ListByProject(ctx, ownerID, projectID)
	}
	for _, st := range opts.Statuses {
		if !ValidStatus(st) {
			return nil, ErrInvalidInput
		}
	}
	for _, p := range opts.Priorities {
		if !ValidPriority(p) {
			return nil, ErrInvalidInput
		}
	}
	return s.repo.ListFiltered(ctx, ownerID, projectID, opts)
}
