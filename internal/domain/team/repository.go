package team

import "context"

// Repository exposes team persistence. Teams are seeded once per
// festival cycle and mutated only through Save after a point award.
type Repository interface {
	GetByID(ctx context.Context, id string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Save(ctx context.Context, t Team) error
}
