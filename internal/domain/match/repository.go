package match

import "context"

// Repository exposes match record persistence, keyed by opaque id.
type Repository interface {
	GetByID(ctx context.Context, id string) (Record, bool, error)
	// List returns records matching the filter, most recently updated
	// first. A zero Limit means unbounded.
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	Create(ctx context.Context, rec Record) error
	// Save overwrites the stored record. The usecase layer owns audit
	// appends and version bumps before calling it.
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context, id string) (bool, error)
}
