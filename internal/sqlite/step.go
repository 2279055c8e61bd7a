package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/venturly/venturly/internal/domain/plan"
	"github.com/venturly/venturly/internal/repository"
)

// StepRepository implements repository.StepRepository for SQLite
type StepRepository struct {
	db *DB
}

// NewStepRepository creates a new StepRepository
func NewStepRepository(db *DB) *StepRepository {
	return &StepRepository{db: db}
}

// Insert adds a validation step; the project must belong to the owner.
func (r *StepRepository) Insert(ctx context.Context, ownerID string, st *plan.Step) error {
	query := `
		INSERT INTO validation_steps (id, project_id, title, goal, method, priority, done, created_at, modified_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS(SELECT 1 FROM projects WHERE id = ? AND owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		st.ID, st.ProjectID, st.Title, st.Goal, st.Method, st.Priority, st.Done, st.CreatedAt, st.ModifiedAt,
		st.ProjectID, ownerID,
	)
	if err != nil {
		if mapped := constraintErr(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert validation step: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrForeignKeyViolation
	}
	return nil
}

// Get retrieves a validation step by ID, scoped to the owner.
func (r *StepRepository) Get(ctx context.Context, ownerID, id string) (*plan.Step, error) {
	query := `
		SELECT s.id, s.project_id, s.title, s.goal, s.method, s.priority, s.done, s.created_at, s.modified_at
		FROM validation_steps s
		JOIN projects p ON p.id = s.project_id
		WHERE s.id = ? AND p.owner_id = ?
	`

	var st plan.Step
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&st.ID, &st.ProjectID, &st.Title, &st.Goal, &st.Method, &st.Priority, &st.Done, &st.CreatedAt, &st.ModifiedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get validation step: %w", err)
	}
	return &st, nil
}

// Update modifies a validation step.
func (r *StepRepository) Update(ctx context.Context, ownerID string, st *plan.Step) error {
	query := `
		UPDATE validation_steps
		SET title = ?, goal = ?, method = ?, priority = ?, done = ?, modified_at = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query, st.Title, st.Goal, st.Method, st.Priority, st.Done, st.ModifiedAt, st.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update validation step: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a validation step.
func (r *StepRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM validation_steps
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete validation step: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByProject returns all validation steps for a project.
func (r *StepRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]plan.Step, error) {
	query := `
		SELECT s.id, s.project_id, s.title, s.goal, s.method, s.priority, s.done, s.created_at, s.modified_at
		FROM validation_steps s
		JOIN projects p ON p.id = s.project_id
		WHERE s.project_id = ? AND p.owner_id = ?
		ORDER BY s.created_at ASC, s.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation steps: %w", err)
	}
	defer rows.Close()

	var steps []plan.Step
	for rows.Next() {
		var st plan.Step
		if err := rows.Scan(&st.ID, &st.ProjectID, &st.Title, &st.Goal, &st.Method, &st.Priority, &st.Done, &st.CreatedAt, &st.ModifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan validation step: %w", err)
		}
		steps = append(steps, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating validation step rows: %w", err)
	}
	return steps, nil
}

// Replace swaps the whole validation-plan slot, conditional on the project
// version.
func (r *StepRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []plan.Step) error {
	return replaceSlot(ctx, r.db, ownerID, projectID, expectedVersion, false, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM validation_steps WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("failed to clear validation steps: %w", err)
		}
		for _, st := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO validation_steps (id, project_id, title, goal, method, priority, done, created_at, modified_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, st.ID, st.ProjectID, st.Title, st.Goal, st.Method, st.Priority, st.Done, st.CreatedAt, st.ModifiedAt)
			if err != nil {
				return fmt.Errorf("failed to insert validation step: %w", err)
			}
		}
		return nil
	})
}
