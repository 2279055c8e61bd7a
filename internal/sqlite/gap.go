package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/venturly/venturly/internal/domain/market"
)

// GapRepository implements repository.GapRepository for SQLite
type GapRepository struct {
	db *DB
}

// NewGapRepository creates a new GapRepository
func NewGapRepository(db *DB) *GapRepository {
	return &GapRepository{db: db}
}

// ListByProject returns the gap analysis ordered by position.
func (r *GapRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]market.Gap, error) {
	query := `
		SELECT g.project_id, g.position, g.gap, g.positioning, g.score, g.rationale
		FROM market_gaps g
		JOIN projects p ON p.id = g.project_id
		WHERE g.project_id = ? AND p.owner_id = ?
		ORDER BY g.position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list market gaps: %w", err)
	}
	defer rows.Close()

	var gaps []market.Gap
	for rows.Next() {
		var g market.Gap
		if err := rows.Scan(&g.ProjectID, &g.Position, &g.Gap, &g.Positioning, &g.Score, &g.Rationale); err != nil {
			return nil, fmt.Errorf("failed to scan market gap: %w", err)
		}
		gaps = append(gaps, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market gap rows: %w", err)
	}
	return gaps, nil
}

// Replace swaps the whole gap list and clears the project's selected-gap
// pointer in the same transaction.
func (r *GapRepository) Replace(ctx context.Context, ownerID, projectID string, expectedVersion int64, gaps []market.Gap) error {
	return replaceSlot(ctx, r.db, ownerID, projectID, expectedVersion, true, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM market_gaps WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("failed to clear market gaps: %w", err)
		}
		for _, g := range gaps {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO market_gaps (project_id, position, gap, positioning, score, rationale)
				VALUES (?, ?, ?, ?, ?, ?)
			`, g.ProjectID, g.Position, g.Gap, g.Positioning, g.Score, g.Rationale)
			if err != nil {
				return fmt.Errorf("failed to insert market gap: %w", err)
			}
		}
		return nil
	})
}
