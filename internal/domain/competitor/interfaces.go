package competitor

import "context"

// Repository provides persistence for competitor entries.
type Repository interface {
	Insert(ctx context.Context, ownerID string, c *Competitor) error
	Get(ctx context.Context, ownerID, id string) (*Competitor, error)
	Update(ctx context.Context, ownerID string, c *Competitor) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByProject(ctx context.Context, ownerID, projectID string) ([]Competitor, error)
}
