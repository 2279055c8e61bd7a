package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/venturly/venturly/internal/domain/credit"
	"github.com/venturly/venturly/internal/repository"
)

// ChargeRepository implements repository.ChargeRepository for SQLite
type ChargeRepository struct {
	db *DB
}

// NewChargeRepository creates a new ChargeRepository
func NewChargeRepository(db *DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

// ListCharges returns the consume log for a project, oldest first.
func (r *ChargeRepository) ListCharges(ctx context.Context, ownerID, projectID string) ([]credit.Charge, error) {
	query := `
		SELECT c.id, c.project_id, c.stage_tag, c.outcome, c.created_at
		FROM credit_charges c
		JOIN projects p ON p.id = c.project_id
		WHERE c.project_id = ? AND p.owner_id = ?
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list charges: %w", err)
	}
	defer rows.Close()

	var charges []credit.Charge
	for rows.Next() {
		var c credit.Charge
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.StageTag, &c.Outcome, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan charge: %w", err)
		}
		charges = append(charges, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating charge rows: %w", err)
	}
	return charges, nil
}

// FindPendingCharge returns the oldest pending charge for a stage, or
// ErrNotFound when none exists.
func (r *ChargeRepository) FindPendingCharge(ctx context.Context, ownerID, projectID, stageTag string) (*credit.Charge, error) {
	query := `
		SELECT c.id, c.project_id, c.stage_tag, c.outcome, c.created_at
		FROM credit_charges c
		JOIN projects p ON p.id = c.project_id
		WHERE c.project_id = ? AND p.owner_id = ? AND c.stage_tag = ? AND c.outcome = 'pending'
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT 1
	`

	var c credit.Charge
	err := r.db.QueryRowContext(ctx, query, projectID, ownerID, stageTag).Scan(
		&c.ID, &c.ProjectID, &c.StageTag, &c.Outcome, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find pending charge: %w", err)
	}
	return &c, nil
}

// SettleCharge records the final outcome of a charge. Settling is
// one-way: a fulfilled or failed charge never goes back to pending.
func (r *ChargeRepository) SettleCharge(ctx context.Context, chargeID string, outcome credit.ChargeOutcome) error {
	if outcome != credit.OutcomeFulfilled && outcome != credit.OutcomeFailed {
		return repository.ErrInvalidInput
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE credit_charges SET outcome = ? WHERE id = ? AND outcome = 'pending'`,
		outcome, chargeID,
	)
	if err != nil {
		return fmt.Errorf("failed to settle charge: %w", err)
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
