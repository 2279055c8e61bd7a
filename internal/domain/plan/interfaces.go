package plan

import "context"

// Repository provides persistence for validation steps.
type Repository interface {
	Insert(ctx context.Context, ownerID string, st *Step) error
	Get(ctx context.Context, ownerID, id string) (*Step, error)
	Update(ctx context.Context, ownerID string, st *Step) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByProject(ctx context.Context, ownerID, projectID string) ([]Step, error)
}
