package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/venturly/venturly/internal/domain/credit"
)

// OwnerRepository implements repository.OwnerRepository for SQLite
type OwnerRepository struct {
	db *DB
}

// NewOwnerRepository creates a new OwnerRepository
func NewOwnerRepository(db *DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// CurrentTier returns the owner's subscription tier. Unknown owners are
// treated as free tier rather than an error; the auth layer decides who
// exists, the billing row only records who paid.
func (r *OwnerRepository) CurrentTier(ctx context.Context, ownerID string) (credit.Tier, error) {
	var tier credit.Tier
	err := r.db.QueryRowContext(ctx,
		`SELECT tier FROM owners WHERE id = ?`, ownerID,
	).Scan(&tier)

	if err == sql.ErrNoRows {
		return credit.TierFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get owner tier: %w", err)
	}
	return tier, nil
}

// SetTier upserts the owner's subscription tier. Takes effect on the next
// credit check; past consumption is never recomputed.
func (r *OwnerRepository) SetTier(ctx context.Context, ownerID string, tier credit.Tier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owners (id, tier) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET tier = excluded.tier
	`, ownerID, tier)
	if err != nil {
		return fmt.Errorf("failed to set owner tier: %w", err)
	}
	return nil
}
