package competitor

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

// Service handles manual competitor entries. Manual CRUD never charges a
// credit; entries coexist with machine-suggested ones in one ordered list.
type Service struct {
	repo     Repository
	enricher *Enricher
	logger   *slog.Logger
}

// NewService creates a competitor service. enricher may be nil to disable
// website metadata enrichment.
func NewService(repo Repository, enricher *Enricher, logger *slog.Logger) *Service {
	return &Service{repo: repo, enricher: enricher, logger: logger}
}

// AddRequest describes a manual competitor entry.
type AddRequest struct {
	ProjectID   string
	Name        string
	Website     string
	Description string
}

// UpdateRequest describes a competitor update. Nil fields are left unchanged.
type UpdateRequest struct {
	ID          string
	Name        *string
	Website     *string
	Description *string
}

// Add appends a user-authored competitor to the project's list. When a
// website is given without name or description, metadata is pulled from the
// page; fetch failures are logged and ignored.
func (s *Service) Add(ctx context.Context, ownerID string, req AddRequest) (*Competitor, error) {
	name := strings.TrimSpace(req.Name)
	website := strings.TrimSpace(req.Website)
	description := strings.TrimSpace(req.Description)

	if name == "" && website == "" {
		return nil, ErrInvalidInput
	}

	if s.enricher != nil && website != "" && (name == "" || description == "") {
		meta, err := s.enricher.Fetch(ctx, website)
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("competitor enrichment failed", "website", website, "error", err)
			}
		} else {
			if name == "" {
				name = meta.Title
			}
			if description == "" {
				description = meta.Description
			}
		}
	}
	if name == "" {
		name = website
	}

	existing, err := s.repo.ListByProject(ctx, ownerID, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing competitors: %w", err)
	}

	c := &Competitor{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Name:        name,
		Website:     website,
		Description: description,
		AIGenerated: false,
		Position:    len(existing),
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, ownerID, c); err != nil {
		if errors.Is(err, errs.ErrForeignKeyViolation) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("inserting competitor: %w", err)
	}

	return c, nil
}

// Update modifies a competitor entry.
func (s *Service) Update(ctx context.Context, ownerID string, req UpdateRequest) (*Competitor, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx, ownerID, req.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("loading competitor: %w", err)
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Website != nil {
		updated.Website = strings.TrimSpace(*req.Website)
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.repo.Update(ctx, ownerID, &updated); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("updating competitor: %w", err)
	}

	return &updated, nil
}

// Remove deletes a competitor entry.
func (s *Service) Remove(ctx context.Context, ownerID, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrCompetitorNotFound
		}
		return fmt.Errorf("deleting competitor: %w", err)
	}
	return nil
}

// List returns the project's competitor list in insertion order.
func (s *Service) List(ctx context.Context, ownerID, projectID string) ([]Competitor, error) {
	return s.repo.ListByProject(ctx, ownerID, projectID)
}
