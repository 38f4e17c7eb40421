package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/itsSambuddha/secons-api/internal/domain/announcement"
)

type AnnouncementRepository struct {
	mu    sync.RWMutex
	items map[string]announcement.Announcement
}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{items: make(map[string]announcement.Announcement)}
}

func (r *AnnouncementRepository) List(_ context.Context) ([]announcement.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]announcement.Announcement, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out, nil
}

func (r *AnnouncementRepository) GetByID(_ context.Context, id string) (announcement.Announcement, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	return a, ok, nil
}

func (r *AnnouncementRepository) Create(_ context.Context, a announcement.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[a.ID] = a
	return nil
}

func (r *AnnouncementRepository) Save(_ context.Context, a announcement.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[a.ID] = a
	return nil
}

func (r *AnnouncementRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
