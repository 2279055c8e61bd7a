package credit

import "time"

// Tier is a subscription tier. Tier changes take effect on the next credit
// check; creditsUsed is never recomputed retroactively.
type Tier string

const (
	TierFree    Tier = "free"
	TierStarter Tier = "starter"
	TierPro     Tier = "pro"
)

// ChargeOutcome tracks what became of a consumed credit.
type ChargeOutcome string

const (
	// OutcomePending: credit consumed, generation result not yet recorded.
	// A pending charge against an empty stage slot is an orphaned charge.
	OutcomePending ChargeOutcome = "pending"
	// OutcomeFulfilled: stage output was generated and persisted.
	OutcomeFulfilled ChargeOutcome = "fulfilled"
	// OutcomeFailed: the external call was made and failed; the credit is
	// spent and a retry is billed again.
	OutcomeFailed ChargeOutcome = "failed"
)

// Charge is one consume-log entry. StageTag is recorded for observability
// and reconciliation only; it never gates the consume decision.
type Charge struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"project_id"`
	StageTag  string        `json:"stage_tag"`
	Outcome   ChargeOutcome `json:"outcome"`
	CreatedAt time.Time     `json:"created_at"`
}

// Summary is the credit state reported to callers.
type Summary struct {
	Tier      Tier `json:"tier"`
	Limit     int  `json:"limit"` // 0 when unlimited
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"` // 0 when unlimited
	Unlimited bool `json:"unlimited"`
}
