package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/venturly/venturly/internal/domain/competitor"
	"github.com/venturly/venturly/internal/repository"
)

// CompetitorRepository implements repository.CompetitorRepository for SQLite
type CompetitorRepository struct {
	db *DB
}

// NewCompetitorRepository creates a new CompetitorRepository
func NewCompetitorRepository(db *DB) *CompetitorRepository {
	return &CompetitorRepository{db: db}
}

// Insert adds a competitor; the project must belong to the owner.
func (r *CompetitorRepository) Insert(ctx context.Context, ownerID string, c *competitor.Competitor) error {
	query := `
		INSERT INTO competitors (id, project_id, name, website, description, ai_generated, position, created_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS(SELECT 1 FROM projects WHERE id = ? AND owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		c.ID, c.ProjectID, c.Name, c.Website, c.Description, c.AIGenerated, c.Position, c.CreatedAt,
		c.ProjectID, ownerID,
	)
	if err != nil {
		if mapped := constraintErr(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert competitor: %w", err)
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

// Get retrieves a competitor by ID, scoped to the owner.
func (r *CompetitorRepository) Get(ctx context.Context, ownerID, id string) (*competitor.Competitor, error) {
	query := `
		SELECT c.id, c.project_id, c.name, c.website, c.description, c.ai_generated, c.position, c.created_at
		FROM competitors c
		JOIN projects p ON p.id = c.project_id
		WHERE c.id = ? AND p.owner_id = ?
	`

	var c competitor.Competitor
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&c.ID, &c.ProjectID, &c.Name, &c.Website, &c.Description, &c.AIGenerated, &c.Position, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get competitor: %w", err)
	}
	return &c, nil
}

// Update modifies a competitor entry.
func (r *CompetitorRepository) Update(ctx context.Context, ownerID string, c *competitor.Competitor) error {
	query := `
		UPDATE competitors
		SET name = ?, website = ?, description = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query, c.Name, c.Website, c.Description, c.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update competitor: %w", err)
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

// Delete removes a competitor entry.
func (r *CompetitorRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM competitors
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete competitor: %w", err)
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

// ListByProject returns the competitor list in insertion order.
func (r *CompetitorRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]competitor.Competitor, error) {
	query := `
		SELECT c.id, c.project_id, c.name, c.website, c.description, c.ai_generated, c.position, c.created_at
		FROM competitors c
		JOIN projects p ON p.id = c.project_id
		WHERE c.project_id = ? AND p.owner_id = ?
		ORDER BY c.position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	defer rows.Close()

	var list []competitor.Competitor
	for rows.Next() {
		var c competitor.Competitor
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Website, &c.Description, &c.AIGenerated, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan competitor: %w", err)
		}
		list = append(list, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competitor rows: %w", err)
	}
	return list, nil
}

// Replace swaps the whole competitor slot, conditional on the project
// version observed by the caller.
func (r *CompetitorRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []competitor.Competitor) error {
	return replaceSlot(ctx, r.db, ownerID, projectID, expectedVersion, false, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM competitors WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("failed to clear competitors: %w", err)
		}
		for _, c := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO competitors (id, project_id, name, website, description, ai_generated, position, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, c.ID, c.ProjectID, c.Name, c.Website, c.Description, c.AIGenerated, c.Position, c.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert competitor: %w", err)
			}
		}
		return nil
	})
}
