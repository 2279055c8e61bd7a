// Package credit meters AI generation against the owner's subscription tier.
// The ledger is the only writer of a project's credit counter.
package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/venturly/venturly/internal/repository/errs"
)

// maxConsumeRetries bounds the read-check-write cycle under contention.
const maxConsumeRetries = 3

// Ledger computes credit limits and performs atomic reserve-and-consume.
type Ledger struct {
	counters CounterRepository
	tiers    TierProvider
	logger   *slog.Logger
}

// NewLedger creates a credit ledger.
func NewLedger(counters CounterRepository, tiers TierProvider, logger *slog.Logger) *Ledger {
	return &Ledger{counters: counters, tiers: tiers, logger: logger}
}

// LimitFor returns the credit limit for a tier. unlimited is true for tiers
// whose counter is never compared against a limit.
func LimitFor(tier Tier) (limit int, unlimited bool) {
	switch tier {
	case TierStarter:
		return 10, false
	case TierPro:
		return 0, true
	default:
		return 4, false
	}
}

// Remaining returns limit minus used, floored at zero. For unlimited tiers
// the remaining count is meaningless and unlimited is true.
func Remaining(used int, tier Tier) (remaining int, unlimited bool) {
	limit, unlimited := LimitFor(tier)
	if unlimited {
		return 0, true
	}
	if used >= limit {
		return 0, false
	}
	return limit - used, false
}

// Summary reports the current credit state for a project.
func (l *Ledger) Summary(ctx context.Context, ownerID, projectID string) (Summary, error) {
	tier, err := l.tiers.CurrentTier(ctx, ownerID)
	if err != nil {
		return Summary{}, fmt.Errorf("reading tier: %w", err)
	}
	used, err := l.counters.Credits(ctx, ownerID, projectID)
	if err != nil {
		return Summary{}, fmt.Errorf("reading credits: %w", err)
	}
	limit, unlimited := LimitFor(tier)
	remaining, _ := Remaining(used, tier)
	return Summary{
		Tier:      tier,
		Limit:     limit,
		Used:      used,
		Remaining: remaining,
		Unlimited: unlimited,
	}, nil
}

// TryConsume atomically charges one credit to the project. It re-reads the
// authoritative counter, checks it against the owner's live tier limit, and
// persists used+1 conditionally on the observed value, retrying a bounded
// number of times when concurrent consumers win the write. On success the
// returned charge is pending until the caller settles it.
func (l *Ledger) TryConsume(ctx context.Context, ownerID, projectID, stageTag string) (*Charge, error) {
	tier, err := l.tiers.CurrentTier(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reading tier: %w", err)
	}
	limit, unlimited := LimitFor(tier)

	for attempt := 0; attempt < maxConsumeRetries; attempt++ {
		used, err := l.counters.Credits(ctx, ownerID, projectID)
		if err != nil {
			return nil, fmt.Errorf("reading credits: %w", err)
		}

		if !unlimited && used >= limit {
			return nil, ErrOutOfCredits
		}

		charge := &Charge{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			StageTag:  stageTag,
			Outcome:   OutcomePending,
			CreatedAt: time.Now(),
		}

		err = l.counters.ConsumeCredit(ctx, ownerID, projectID, used, charge)
		if err == nil {
			if l.logger != nil {
				l.logger.Info("credit consumed",
					"project_id", projectID, "stage", stageTag, "used", used+1, "tier", tier)
			}
			return charge, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, fmt.Errorf("consuming credit: %w", err)
		}
	}

	return nil, ErrConcurrentConflict
}
