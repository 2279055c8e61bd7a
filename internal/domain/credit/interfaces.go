package credit

import "context"

// CounterRepository provides the authoritative credit counter. ConsumeCredit
// must persist used+1 and the charge row as one conditional write keyed on
// expectedUsed, returning repository.ErrConflict when another consumer
// advanced the counter first.
type CounterRepository interface {
	Credits(ctx context.Context, ownerID, projectID string) (int, error)
	ConsumeCredit(ctx context.Context, ownerID, projectID string, expectedUsed int, charge *Charge) error
}

// ChargeRepository reads and settles consume-log entries.
type ChargeRepository interface {
	ListCharges(ctx context.Context, ownerID, projectID string) ([]Charge, error)
	FindPendingCharge(ctx context.Context, ownerID, projectID, stageTag string) (*Charge, error)
	SettleCharge(ctx context.Context, chargeID string, outcome ChargeOutcome) error
}

// TierProvider reads the owner's subscription tier, live, on every check.
type TierProvider interface {
	CurrentTier(ctx context.Context, ownerID string) (Tier, error)
}
