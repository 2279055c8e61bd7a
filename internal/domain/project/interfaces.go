package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, ownerID string, proj *Project) error
	Get(ctx context.Context, ownerID, id string) (*Project, error)
	List(ctx context.Context, ownerID string) ([]Summary, error)
	SetTitle(ctx context.Context, ownerID, id, title string, expectedVersion int64) error
}
