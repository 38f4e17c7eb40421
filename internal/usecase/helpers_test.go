package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/domain/user"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/memory"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%03d", g.next), nil
}

// recordingNotifier captures published score events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ScoreEvent
}

func (n *recordingNotifier) Publish(_ context.Context, event ScoreEvent) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) Events() []ScoreEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ScoreEvent(nil), n.events...)
}

var operatorActor = user.Principal{UserID: "op-1", Role: user.RoleOperator, Domain: "secons"}

func newTestMatchService(id string) (*MatchService, *memory.MatchRepository, *recordingNotifier) {
	matchRepo := memory.NewMatchRepository()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	notifier := &recordingNotifier{}
	service := NewMatchService(matchRepo, teamRepo, staticIDGenerator{id: id}, notifier, nil)
	return service, matchRepo, notifier
}

func cricketCreateInput(scheduledAt time.Time) match.CreateInput {
	return match.CreateInput{
		Team1ID:     memory.TeamIDAzure,
		Team2ID:     memory.TeamIDCrimson,
		SportName:   match.SportCricket,
		Venue:       "Main Ground",
		ScheduledAt: scheduledAt,
		RoundName:   "League",
	}
}
