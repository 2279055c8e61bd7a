package project

import "time"

// Project is the root aggregate for one idea-validation run. Version is the
// optimistic concurrency token: every slot-level write is conditional on the
// version observed at read time. CreditsUsed is owned by the credit ledger and
// must never be written outside its consume path.
type Project struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Title            string    `json:"title"`
	Idea             string    `json:"idea,omitempty"`
	SelectedGapIndex *int      `json:"selected_gap_index,omitempty"`
	CreditsUsed      int       `json:"credits_used"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Summary is a lightweight representation for listing
type Summary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	IdeaCaptured     bool      `json:"idea_captured"`
	CompetitorCount  int       `json:"competitor_count"`
	GapCount         int       `json:"gap_count"`
	FeatureCount     int       `json:"feature_count"`
	ValidationSteps  int       `json:"validation_steps"`
	CreditsUsed      int       `json:"credits_used"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
