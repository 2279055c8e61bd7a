// Package plan holds validation-plan steps: concrete experiments the owner
// runs to test the idea. Steps share the feature list's independence from
// pipeline stage completion.
package plan

import (
	"time"

	"github.com/venturly/venturly/internal/domain/feature"
)

// Step is one validation experiment.
type Step struct {
	ID         string           `json:"id"`
	ProjectID  string           `json:"project_id"`
	Title      string           `json:"title"`
	Goal       string           `json:"goal,omitempty"`
	Method     string           `json:"method,omitempty"`
	Priority   feature.Priority `json:"priority"`
	Done       bool             `json:"done"`
	CreatedAt  time.Time        `json:"created_at"`
	ModifiedAt time.Time        `json:"modified_at"`
}
