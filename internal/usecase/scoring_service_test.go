package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/memory"
)

func newLiveCricketMatch(t *testing.T) (*ScoringService, *memory.MatchRepository, match.Record) {
	t.Helper()

	matchService, matchRepo, _ := newTestMatchService("match-001")
	lifecycle := NewLifecycleService(matchRepo, nil, nil)
	scoring := NewScoringService(matchRepo, nil, nil)

	created, err := matchService.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	live, err := lifecycle.Transition(t.Context(), operatorActor, created.ID, match.StatusLive, "")
	require.NoError(t, err)

	return scoring, matchRepo, live
}

func TestScoringService_SessionStartsAtToss(t *testing.T) {
	scoring, _, live := newLiveCricketMatch(t)

	status, err := scoring.Status(t.Context(), live.ID)
	require.NoError(t, err)
	require.Equal(t, cricket.StateAwaitingToss, status.State)
	require.NotEmpty(t, status.Prompt)
	require.NotNil(t, status.Data)
}

func TestScoringService_SessionRequiresLiveCricketMatch(t *testing.T) {
	matchService, matchRepo, _ := newTestMatchService("match-001")
	scoring := NewScoringService(matchRepo, nil, nil)

	created, err := matchService.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = scoring.Status(t.Context(), created.ID)
	require.ErrorIs(t, err, ErrConflict, "scheduled match cannot open a session")

	_, err = scoring.Status(t.Context(), "match-ghost")
	require.ErrorIs(t, err, ErrNotFound)

	in := cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	in.SportName = "Volleyball"
	in.Team1ID = memory.TeamIDEmerald
	in.Team2ID = memory.TeamIDSaffron
	other := NewMatchService(matchRepo, memory.NewTeamRepository(memory.SeedTeams()), staticIDGenerator{id: "match-002"}, nil, nil)
	volleyball, err := other.Create(t.Context(), operatorActor, in)
	require.NoError(t, err)

	lifecycle := NewLifecycleService(matchRepo, nil, nil)
	_, err = lifecycle.Transition(t.Context(), operatorActor, volleyball.ID, match.StatusLive, "")
	require.NoError(t, err)

	_, err = scoring.Status(t.Context(), volleyball.ID)
	require.ErrorIs(t, err, ErrInvalidInput, "non-cricket match cannot open a session")
}

func TestScoringService_BallEventsFlowThroughEngine(t *testing.T) {
	scoring, _, live := newLiveCricketMatch(t)

	_, err := scoring.SetToss(t.Context(), live.ID, "Azure House", cricket.DecisionBat)
	require.NoError(t, err)
	_, err = scoring.SetBatsmen(t.Context(), live.ID, "Arjun", "Bikram")
	require.NoError(t, err)

	status, err := scoring.Ball(t.Context(), live.ID, 4)
	require.NoError(t, err)
	require.Equal(t, cricket.StateInPlay, status.State)
	require.Equal(t, 4, status.Data.Team1.Runs)

	_, err = scoring.Ball(t.Context(), live.ID, 5)
	require.ErrorIs(t, err, cricket.ErrInvalidRunValue)

	status, err = scoring.Wicket(t.Context(), live.ID)
	require.NoError(t, err)
	require.Equal(t, cricket.StateAwaitingBatter, status.State)

	_, err = scoring.Ball(t.Context(), live.ID, 1)
	require.ErrorIs(t, err, cricket.ErrPromptOutstanding)

	status, err = scoring.NewBatter(t.Context(), live.ID, "Chirag")
	require.NoError(t, err)
	require.Equal(t, cricket.StateInPlay, status.State)
}

func TestScoringService_SyncCommitsScoresAndAudit(t *testing.T) {
	scoring, matchRepo, live := newLiveCricketMatch(t)

	_, err := scoring.SetToss(t.Context(), live.ID, "Azure House", cricket.DecisionBat)
	require.NoError(t, err)
	_, err = scoring.SetBatsmen(t.Context(), live.ID, "Arjun", "Bikram")
	require.NoError(t, err)
	_, err = scoring.Ball(t.Context(), live.ID, 4)
	require.NoError(t, err)
	_, err = scoring.Ball(t.Context(), live.ID, 2)
	require.NoError(t, err)

	synced, err := scoring.Sync(t.Context(), operatorActor, live.ID)
	require.NoError(t, err)
	require.Equal(t, 6, synced.ScoreTeam1)
	require.Equal(t, 0, synced.ScoreTeam2)
	require.Equal(t, live.Version+1, synced.Version)
	require.NotNil(t, synced.Cricket)
	require.Equal(t, 6, synced.Cricket.Team1.Runs)

	last := synced.AuditTrail[len(synced.AuditTrail)-1]
	require.Equal(t, match.AuditReasonScoreUpdate, last.Reason)
	require.Equal(t, operatorActor.UserID, last.Actor)

	stored, exists, err := matchRepo.GetByID(t.Context(), live.ID)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, 6, stored.ScoreTeam1)
	require.Equal(t, match.StatusLive, stored.Status)

	// The session base follows the committed version, so another sync
	// after more play keeps working.
	_, err = scoring.Ball(t.Context(), live.ID, 6)
	require.NoError(t, err)
	again, err := scoring.Sync(t.Context(), operatorActor, live.ID)
	require.NoError(t, err)
	require.Equal(t, 12, again.ScoreTeam1)
	require.Equal(t, synced.Version+1, again.Version)
}

func TestScoringService_SyncDetectsConcurrentUpdate(t *testing.T) {
	scoring, matchRepo, live := newLiveCricketMatch(t)

	_, err := scoring.SetToss(t.Context(), live.ID, "Azure House", cricket.DecisionBat)
	require.NoError(t, err)
	_, err = scoring.SetBatsmen(t.Context(), live.ID, "Arjun", "Bikram")
	require.NoError(t, err)
	_, err = scoring.Ball(t.Context(), live.ID, 1)
	require.NoError(t, err)

	// Someone else touches the record behind the session's back.
	rec, _, err := matchRepo.GetByID(t.Context(), live.ID)
	require.NoError(t, err)
	rec.Version++
	require.NoError(t, matchRepo.Save(t.Context(), rec))

	_, err = scoring.Sync(t.Context(), operatorActor, live.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestScoringService_SyncOnTerminalMatchDropsSession(t *testing.T) {
	scoring, matchRepo, live := newLiveCricketMatch(t)

	_, err := scoring.SetToss(t.Context(), live.ID, "Azure House", cricket.DecisionBat)
	require.NoError(t, err)

	rec, _, err := matchRepo.GetByID(t.Context(), live.ID)
	require.NoError(t, err)
	rec.Status = match.StatusCancelled
	require.NoError(t, matchRepo.Save(t.Context(), rec))

	_, err = scoring.Sync(t.Context(), operatorActor, live.ID)
	require.ErrorIs(t, err, ErrConflict)

	// The stale session is gone; a fresh attempt re-reads the store and
	// sees the terminal status.
	_, err = scoring.Status(t.Context(), live.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestScoringService_CompletedChaseCompletesMatchOnSync(t *testing.T) {
	scoring, matchRepo, live := newLiveCricketMatch(t)

	// Plant a nearly-finished chase and rebuild the session from it.
	rec, _, err := matchRepo.GetByID(t.Context(), live.ID)
	require.NoError(t, err)
	rec.Cricket = &cricket.CricketData{
		Innings: 2,
		Team1:   cricket.InningsStats{Runs: 10, Overs: cricket.OversPerInnings},
		Team2:   cricket.InningsStats{Runs: 10, Balls: 3},
		Target:  11,
		Toss:    &cricket.Toss{Winner: "Azure House", Decision: cricket.DecisionBat},
		Batting: cricket.Batting{
			Striker:    cricket.BatterStats{Name: "Esha", Runs: 6, Balls: 2},
			NonStriker: cricket.BatterStats{Name: "Farhan", Runs: 4, Balls: 1},
		},
		Bowling: cricket.BowlerStats{Name: "Gaurav", Runs: 10, Balls: 3},
	}
	require.NoError(t, matchRepo.Save(t.Context(), rec))

	status, err := scoring.Ball(t.Context(), live.ID, 1)
	require.NoError(t, err)
	require.Equal(t, cricket.StateCompleted, status.State)

	synced, err := scoring.Sync(t.Context(), operatorActor, live.ID)
	require.NoError(t, err)
	require.Equal(t, match.StatusCompleted, synced.Status)
	require.Equal(t, 11, synced.ScoreTeam2)

	// Completion retires the session for good.
	_, err = scoring.Status(t.Context(), live.ID)
	require.ErrorIs(t, err, ErrConflict)
}
