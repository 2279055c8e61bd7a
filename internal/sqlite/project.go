package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/domain/project"
	"github.com/venturly/venturly/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, ownerID string, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, owner_id, title, idea, credits_used, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		ownerID,
		proj.Title,
		proj.Idea,
		proj.CreditsUsed,
		proj.Version,
		proj.CreatedAt,
		proj.UpdatedAt,
	)

	if err != nil {
		if mapped := constraintErr(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, ownerID, id string) (*project.Project, error) {
	query := `
		SELECT id, owner_id, title, idea, selected_gap_index, credits_used, version, created_at, updated_at
		FROM projects
		WHERE id = ? AND owner_id = ?
	`

	var proj project.Project
	var selected sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&proj.ID,
		&proj.OwnerID,
		&proj.Title,
		&proj.Idea,
		&selected,
		&proj.CreditsUsed,
		&proj.Version,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if selected.Valid {
		idx := int(selected.Int64)
		proj.SelectedGapIndex = &idx
	}

	return &proj, nil
}

// List returns all projects for an owner with slot counts
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]project.Summary, error) {
	query := `
		SELECT
			p.id,
			p.title,
			p.idea != '' as idea_captured,
			p.credits_used,
			p.created_at,
			p.updated_at,
			(SELECT COUNT(*) FROM competitors c WHERE c.project_id = p.id) as competitor_count,
			(SELECT COUNT(*) FROM market_gaps g WHERE g.project_id = p.id) as gap_count,
			(SELECT COUNT(*) FROM features f WHERE f.project_id = p.id) as feature_count,
			(SELECT COUNT(*) FROM validation_steps s WHERE s.project_id = p.id) as step_count
		FROM projects p
		WHERE p.owner_id = ?
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var summary project.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.IdeaCaptured,
			&summary.CreditsUsed,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.CompetitorCount,
			&summary.GapCount,
			&summary.FeatureCount,
			&summary.ValidationSteps,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// SetTitle updates the title with optimistic concurrency control
func (r *ProjectRepository) SetTitle(ctx context.Context, ownerID, id, title string, expectedVersion int64) error {
	query := `
		UPDATE projects
		SET title = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND version = ?
	`
	return r.conditionalWrite(ctx, ownerID, id, query, title, time.Now(), id, ownerID, expectedVersion)
}

// SetIdea writes the idea slot with optimistic concurrency control
func (r *ProjectRepository) SetIdea(ctx context.Context, ownerID, id, idea string, expectedVersion int64) error {
	query := `
		UPDATE projects
		SET idea = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND version = ?
	`
	return r.conditionalWrite(ctx, ownerID, id, query, idea, time.Now(), id, ownerID, expectedVersion)
}

// SetSelectedGap writes the selected-gap pointer with optimistic concurrency
// control. A nil index clears the pointer.
func (r *ProjectRepository) SetSelectedGap(ctx context.Context, ownerID, id string, index *int, expectedVersion int64) error {
	var value sql.NullInt64
	if index != nil {
		value = sql.NullInt64{Int64: int64(*index), Valid: true}
	}

	query := `
		UPDATE projects
		SET selected_gap_index = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND version = ?
	`
	return r.conditionalWrite(ctx, ownerID, id, query, value, time.Now(), id, ownerID, expectedVersion)
}

// Credits reads the authoritative credit counter
func (r *ProjectRepository) Credits(ctx context.Context, ownerID, projectID string) (int, error) {
	var used int
	err := r.db.QueryRowContext(ctx,
		`SELECT credits_used FROM projects WHERE id = ? AND owner_id = ?`,
		projectID, ownerID,
	).Scan(&used)

	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read credits: %w", err)
	}
	return used, nil
}

// ConsumeCredit persists used+1 and the charge row as a single transaction,
// conditional on the counter still holding expectedUsed.
func (r *ProjectRepository) ConsumeCredit(ctx context.Context, ownerID, projectID string, expectedUsed int, charge *credit.Charge) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The counter has its own compare-and-set guard; the version token is
	// left alone so a slot write prepared before the consume still lands.
	result, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET credits_used = ?, updated_at = ?
		WHERE id = ? AND owner_id = ? AND credits_used = ?
	`, expectedUsed+1, time.Now(), projectID, ownerID, expectedUsed)
	if err != nil {
		return fmt.Errorf("failed to consume credit: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return missingOrConflictTx(ctx, tx, ownerID, projectID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO credit_charges (id, project_id, stage_tag, outcome, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, charge.ID, charge.ProjectID, charge.StageTag, charge.Outcome, charge.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to log charge: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *ProjectRepository) conditionalWrite(ctx context.Context, ownerID, id, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return r.missingOrConflict(ctx, ownerID, id)
	}
	return nil
}

// missingOrConflict distinguishes a vanished project from a lost version race.
func (r *ProjectRepository) missingOrConflict(ctx context.Context, ownerID, id string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE id = ? AND owner_id = ?)`,
		id, ownerID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}
