package team

import (
	"fmt"
	"time"
)

// Team is a semantic group competing across festival events.
type Team struct {
	ID          string
	Name        string
	GroupLabel  string
	Semester    string
	TotalPoints int
	Awards      []PointAward
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PointAward is one per-event point grant. The award list is ordered and
// append-only; TotalPoints is a cached sum over it.
type PointAward struct {
	EventRef  string
	Points    int
	Position  int
	AwardedBy string
	AwardedAt time.Time
	Reason    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// ApplyAward appends one award and keeps TotalPoints equal to the sum of
// the award list.
func (t *Team) ApplyAward(award PointAward) {
	t.Awards = append(t.Awards, award)
	t.TotalPoints += award.Points
}

// RecomputeTotal rebuilds the cached total from the award list.
func (t *Team) RecomputeTotal() {
	total := 0
	for _, award := range t.Awards {
		total += award.Points
	}
	t.TotalPoints = total
}
