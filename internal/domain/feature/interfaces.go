package feature

import "context"

// ListOptions filters feature listings.
type ListOptions struct {
	Statuses   []Status
	Priorities []Priority
}

// Repository provides persistence for features.
type Repository interface {
	Insert(ctx context.Context, ownerID string, f *Feature) error
	Get(ctx context.Context, ownerID, id string) (*Feature, error)
	Update(ctx context.Context, ownerID string, f *Feature) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByProject(ctx context.Context, ownerID, projectID string) ([]Feature, error)
	ListFiltered(ctx context.Context, ownerID, projectID string, opts ListOptions) ([]Feature, error)
}
