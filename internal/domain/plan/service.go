package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/repository/errs"
)

// Service handles manual validation-step CRUD.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a validation-plan service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddRequest describes a manually created validation step.
type AddRequest struct {
	ProjectID string
	Title     string
	Goal      string
	Method    string
	Priority  feature.Priority
}

// UpdateRequest describes a step update. Nil fields are left unchanged.
type UpdateRequest struct {
	ID       string
	Title    *string
	Goal     *string
	Method   *string
	Priority *feature.Priority
	Done     *bool
}

// Add creates a user-authored validation step.
func (s *Service) Add(ctx context.Context, ownerID string, req AddRequest) (*Step, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrInvalidInput
	}

	priority := req.Priority
	if priority == "" {
		priority = feature.PriorityMedium
	}
	if !feature.ValidPriority(priority) {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	st := &Step{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		Title:      strings.TrimSpace(req.Title),
		Goal:       strings.TrimSpace(req.Goal),
		Method:     strings.TrimSpace(req.Method),
		Priority:   priority,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.repo.Insert(ctx, ownerID, st); err != nil {
		if errors.Is(err, errs.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("inserting validation step: %w", err)
	}

	return st, nil
}

// Update modifies a validation step, including marking it done.
func (s *Service) Update(ctx context.Context, ownerID string, req UpdateRequest) (*Step, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, ownerID, req.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrStepNotFound
		}
		return nil, fmt.Errorf("loading validation step: %w", err)
	}

	updated := *current
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Goal != nil {
		updated.Goal = strings.TrimSpace(*req.Goal)
	}
	if req.Method != nil {
		updated.Method = strings.TrimSpace(*req.Method)
	}
	if req.Priority != nil {
		if !feature.ValidPriority(*req.Priority) {
			return nil, ErrInvalidInput
		}
		updated.Priority = *req.Priority
	}
	if req.Done != nil {
		updated.Done = *req.Done
	}
	updated.ModifiedAt = time.Now()

	if err := s.repo.Update(ctx, ownerID, &updated); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrStepNotFound
		}
		return nil, fmt.Errorf("updating validation step: %w", err)
	}

	return &updated, nil
}

// Remove deletes a validation step.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrStepNotFound
		}
		return fmt.Errorf("deleting validation step: %w", err)
	}
	return nil
}

// List returns the project's validation steps in creation order.
func (s *Service) List(ctx context.Context, ownerID, projectID string) ([]Step, error) {
	return s.repo.ListByProject(ctx, ownerID, projectID)
}
