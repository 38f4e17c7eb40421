package announcement

import "context"

type Repository interface {
	// List returns announcements newest first, pinned entries leading.
	List(ctx context.Context) ([]Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, bool, error)
	Create(ctx context.Context, a Announcement) error
	Save(ctx context.Context, a Announcement) error
	Delete(ctx context.Context, id string) (bool, error)
}
