package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

const (
	FormatStandard = "standard"
	FormatHeats    = "heats"
	FormatTimed    = "timed"
)

// SportCricket is the sport name that switches on the cricket
// specialization. The check is case-significant.
const SportCricket = "Cricket"

const (
	AuditReasonInitialized = "Match Initialized"
	AuditReasonScoreUpdate = "Score Update"
	AuditReasonAutoLive    = "Auto-transitioned to Live"
)

// Record is one scheduled contest between two teams.
type Record struct {
	ID          string
	Team1ID     string
	Team2ID     string
	SportName   string
	Venue       string
	ScheduledAt time.Time
	RoundName   string
	Format      string
	Status      string
	ScoreTeam1  int
	ScoreTeam2  int
	Cricket     *cricket.CricketData
	AuditTrail  []AuditEntry
	MVPTeamID   string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditEntry is one append-only score snapshot. Entries are never
// mutated or truncated.
type AuditEntry struct {
	Actor      string
	ScoreTeam1 int
	ScoreTeam2 int
	Reason     string
	At         time.Time
}

// ListFilter narrows List results. Sport is a case-insensitive
// substring match.
type ListFilter struct {
	Status string
	Sport  string
	Limit  int
}

func (r Record) IsCricket() bool {
	return r.SportName == SportCricket
}

// SeedCricketOnLive creates the zeroed cricket sub-document the first
// time a cricket match is live. Every go-live path must call it so a
// scorer never opens against a nil document. Existing data is kept.
func (r *Record) SeedCricketOnLive() {
	if r.Status == StatusLive && r.IsCricket() && r.Cricket == nil {
		r.Cricket = cricket.NewData()
	}
}

func (r Record) IsTerminal() bool {
	return IsTerminalStatus(r.Status)
}

func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusLive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle state machine permits
// moving from one status to another. Terminal states accept nothing.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusScheduled:
		return to == StatusLive || to == StatusCompleted || to == StatusCancelled
	case StatusLive:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// MatchesFilter applies the list filter to one record.
func (r Record) MatchesFilter(filter ListFilter) bool {
	if filter.Status != "" && r.Status != filter.Status {
		return false
	}
	if filter.Sport != "" &&
		!strings.Contains(strings.ToLower(r.SportName), strings.ToLower(filter.Sport)) {
		return false
	}
	return true
}

// CreateInput carries the fields required to schedule a match.
type CreateInput struct {
	Team1ID     string
	Team2ID     string
	SportName   string
	Venue       string
	ScheduledAt time.Time
	RoundName   string
	Format      string
	ScoreTeam1  int
	ScoreTeam2  int
}

func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Team1ID) == "" {
		return fmt.Errorf("team1 is required")
	}
	if strings.TrimSpace(in.Team2ID) == "" {
		return fmt.Errorf("team2 is required")
	}
	if in.Team1ID == in.Team2ID {
		return fmt.Errorf("team1 and team2 must be distinct")
	}
	if strings.TrimSpace(in.SportName) == "" {
		return fmt.Errorf("sport name is required")
	}
	if strings.TrimSpace(in.Venue) == "" {
		return fmt.Errorf("venue is required")
	}
	if in.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if in.Format != "" {
		switch in.Format {
		case FormatStandard, FormatHeats, FormatTimed:
		default:
			return fmt.Errorf("unknown format %q", in.Format)
		}
	}
	if in.ScoreTeam1 < 0 || in.ScoreTeam2 < 0 {
		return fmt.Errorf("scores must be non-negative")
	}

	return nil
}
