package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/venturly/venturly/internal/domain/feature"
	"github.com/venturly/venturly/internal/repository"
)

// FeatureRepository implements repository.FeatureRepository for SQLite
type FeatureRepository struct {
	db *DB
}

// NewFeatureRepository creates a new FeatureRepository
func NewFeatureRepository(db *DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// Insert adds a feature; the project must belong to the owner.
func (r *FeatureRepository) Insert(ctx context.Context, ownerID string, f *feature.Feature) error {
	query := `
		INSERT INTO features (id, project_id, title, description, status, priority, ai_generated, created_at, modified_at)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE EXISTS(SELECT 1 FROM projects WHERE id = ? AND owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		f.ID, f.ProjectID, f.Title, f.Description, f.Status, f.Priority, f.AIGenerated, f.CreatedAt, f.ModifiedAt,
		f.ProjectID, ownerID,
	)
	if err != nil {
		if mapped := constraintErr(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert feature: %w", err)
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

// Get retrieves a feature by ID, scoped to the owner.
func (r *FeatureRepository) Get(ctx context.Context, ownerID, id string) (*feature.Feature, error) {
	query := `
		SELECT f.id, f.project_id, f.title, f.description, f.status, f.priority, f.ai_generated, f.created_at, f.modified_at
		FROM features f
		JOIN projects p ON p.id = f.project_id
		WHERE f.id = ? AND p.owner_id = ?
	`

	var f feature.Feature
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&f.ID, &f.ProjectID, &f.Title, &f.Description, &f.Status, &f.Priority, &f.AIGenerated, &f.CreatedAt, &f.ModifiedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feature: %w", err)
	}
	return &f, nil
}

// Update modifies a feature entry.
func (r *FeatureRepository) Update(ctx context.Context, ownerID string, f *feature.Feature) error {
	query := `
		UPDATE features
		SET title = ?, description = ?, status = ?, priority = ?, modified_at = ?
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query, f.Title, f.Description, f.Status, f.Priority, f.ModifiedAt, f.ID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update feature: %w", err)
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

// Delete removes a feature entry.
func (r *FeatureRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM features
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)
	`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete feature: %w", err)
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

// ListByProject returns all features for a project.
func (r *FeatureRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]feature.Feature, error) {
	return r.ListFiltered(ctx, ownerID, projectID, feature.ListOptions{})
}

// ListFiltered returns features matching the given status and priority
// filters. Empty filters match everything.
func (r *FeatureRepository) ListFiltered(ctx context.Context, ownerID, projectID string, opts feature.ListOptions) ([]feature.Feature, error) {
	builder := sq.Select(
		"f.id", "f.project_id", "f.title", "f.description",
		"f.status", "f.priority", "f.ai_generated", "f.created_at", "f.modified_at",
	).
		From("features f").
		Join("projects p ON p.id = f.project_id").
		Where(sq.Eq{"f.project_id": projectID, "p.owner_id": ownerID}).
		OrderBy("f.created_at ASC", "f.id ASC")

	if len(opts.Statuses) > 0 {
		builder = builder.Where(sq.Eq{"f.status": opts.Statuses})
	}
	if len(opts.Priorities) > 0 {
		builder = builder.Where(sq.Eq{"f.priority": opts.Priorities})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build feature query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	defer rows.Close()

	var features []feature.Feature
	for rows.Next() {
		var f feature.Feature
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Title, &f.Description, &f.Status, &f.Priority, &f.AIGenerated, &f.CreatedAt, &f.ModifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		features = append(features, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feature rows: %w", err)
	}
	return features, nil
}

// Replace swaps the whole feature slot, conditional on the project version.
func (r *FeatureRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, items []feature.Feature) error {
	return replaceSlot(ctx, r.db, ownerID, projectID, expectedVersion, false, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM features WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("failed to clear features: %w", err)
		}
		for _, f := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO features (id, project_id, title, description, status, priority, ai_generated, created_at, modified_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, f.ID, f.ProjectID, f.Title, f.Description, f.Status, f.Priority, f.AIGenerated, f.CreatedAt, f.ModifiedAt)
			if err != nil {
				return fmt.Errorf("failed to insert feature: %w", err)
			}
		}
		return nil
	})
}
