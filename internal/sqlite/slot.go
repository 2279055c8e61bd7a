package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/venturly/venturly/internal/repository"
)

// replaceSlot runs fn inside a transaction that first bumps the project
// version conditionally on expectedVersion. A replace that loses the race
// touches nothing. When clearGapSelection is set the project's selected
// gap pointer is reset in the same transaction, so a regenerated gap list
// never carries a selection made against the old one.
func replaceSlot(ctx context.Context, db *DB, ownerID, projectID string, expectedVersion int64, clearGapSelection bool, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bump := `
		UPDATE projects
		SET version = version + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND version = ?
	`
	if clearGapSelection {
		bump = `
			UPDATE projects
			SET version = version + 1, updated_at = ?, selected_gap_index = NULL
			WHERE id = ? AND owner_id = ? AND version = ?
		`
	}

	result, err := tx.ExecContext(ctx, bump, time.Now(), projectID, ownerID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to bump project version: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return missingOrConflictTx(ctx, tx, ownerID, projectID)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func missingOrConflictTx(ctx context.Context, tx *sql.Tx, ownerID, id string) error {
	var exists bool
	err := tx.QueryRowContext(ctx,
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
