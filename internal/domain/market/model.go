// Package market holds the market-gap scoring analysis model. The analysis is
// generated as a whole by one completion call and replaced atomically on
// rerun; individual gaps are never edited in place.
package market

// Gap is one scored entry of the market-gap analysis, ordered by Position.
type Gap struct {
	ProjectID   string `json:"project_id"`
	Position    int    `json:"position"`
	Gap         string `json:"gap"`
	Positioning string `json:"positioning_suggestion"`
	Score       int    `json:"score"`
	Rationale   string `json:"rationale"`
}
