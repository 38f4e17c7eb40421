package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/itsSambuddha/secons-api/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	records map[string]match.Record
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{records: make(map[string]match.Record)}
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return match.Record{}, false, nil
	}
	return copyRecord(rec), true, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.ListFilter) ([]match.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Record, 0, len(r.records))
	for _, rec := range r.records {
		if !rec.MatchesFilter(filter) {
			continue
		}
		out = append(out, copyRecord(rec))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, rec match.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = copyRecord(rec)
	return nil
}

func (r *MatchRepository) Save(_ context.Context, rec match.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[rec.ID] = copyRecord(rec)
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

func copyRecord(rec match.Record) match.Record {
	out := rec
	if rec.AuditTrail != nil {
		out.AuditTrail = append([]match.AuditEntry(nil), rec.AuditTrail...)
	}
	out.Cricket = rec.Cricket.Clone()
	return out
}
