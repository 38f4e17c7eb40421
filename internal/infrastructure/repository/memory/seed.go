package memory

import (
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/team"
)

// Festival teams seeded at cycle start. Handy team ids for tests.
const (
	TeamIDAzure   = "team-azure"
	TeamIDCrimson = "team-crimson"
	TeamIDEmerald = "team-emerald"
	TeamIDSaffron = "team-saffron"
)

// SeedTeams returns the default festival cohort. Teams are created once
// per cycle and only gain point awards afterwards.
func SeedTeams() []team.Team {
	seededAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	return []team.Team{
		{ID: TeamIDAzure, Name: "Azure House", GroupLabel: "A", Semester: "S6", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: TeamIDCrimson, Name: "Crimson House", GroupLabel: "B", Semester: "S6", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: TeamIDEmerald, Name: "Emerald House", GroupLabel: "A", Semester: "S4", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: TeamIDSaffron, Name: "Saffron House", GroupLabel: "B", Semester: "S4", CreatedAt: seededAt, UpdatedAt: seededAt},
	}
}
