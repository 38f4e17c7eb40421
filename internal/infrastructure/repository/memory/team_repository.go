package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/itsSambuddha/secons-api/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]team.Team
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	teams := make(map[string]team.Team, len(seed))
	for _, t := range seed {
		teams[t.ID] = copyTeam(t)
	}

	return &TeamRepository{teams: teams}
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	if !ok {
		return team.Team{}, false, nil
	}
	return copyTeam(t), true, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, copyTeam(t))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) Save(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[t.ID] = copyTeam(t)
	return nil
}

func copyTeam(t team.Team) team.Team {
	out := t
	if t.Awards != nil {
		out.Awards = append([]team.PointAward(nil), t.Awards...)
	}
	return out
}
