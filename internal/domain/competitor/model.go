package competitor

import "time"

// Competitor is one entry in a project's competitor list. Machine-suggested
// and user-authored entries coexist in a single list ordered by Position
// (insertion order).
type Competitor struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	AIGenerated bool      `json:"ai_generated"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}
