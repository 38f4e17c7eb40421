package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/memory"
)

func TestLifecycleService_Transition_GoingLiveSeedsCricketData(t *testing.T) {
	matchService, matchRepo, _ := newTestMatchService("match-001")
	lifecycle := NewLifecycleService(matchRepo, nil, nil)

	created, err := matchService.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec, err := lifecycle.Transition(t.Context(), operatorActor, created.ID, match.StatusLive, "")
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	if rec.Status != match.StatusLive {
		t.Fatalf("expected live, got %s", rec.Status)
	}
	if rec.Cricket == nil || rec.Cricket.Innings != 1 {
		t.Fatalf("expected zeroed cricket sub-document, got %+v", rec.Cricket)
	}
	if rec.Version != created.Version+1 {
		t.Fatalf("expected version bump, got %d", rec.Version)
	}
	if got := rec.AuditTrail[len(rec.AuditTrail)-1].Reason; got != "Status set to live" {
		t.Fatalf("expected default transition reason, got %q", got)
	}
}

func TestLifecycleService_Transition_NonCricketGetsNoSubDocument(t *testing.T) {
	matchService, matchRepo, _ := newTestMatchService("match-001")
	lifecycle := NewLifecycleService(matchRepo, nil, nil)

	in := cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	in.SportName = "Volleyball"
	created, err := matchService.Create(t.Context(), operatorActor, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rec, err := lifecycle.Transition(t.Context(), operatorActor, created.ID, match.StatusLive, "")
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if rec.Cricket != nil {
		t.Fatalf("volleyball must not get cricket data, got %+v", rec.Cricket)
	}
}

func TestLifecycleService_Transition_TerminalRejected(t *testing.T) {
	matchService, matchRepo, _ := newTestMatchService("match-001")
	lifecycle := NewLifecycleService(matchRepo, nil, nil)

	created, err := matchService.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := lifecycle.Transition(t.Context(), operatorActor, created.ID, match.StatusCancelled, "rain"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	_, err = lifecycle.Transition(t.Context(), operatorActor, created.ID, match.StatusLive, "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on cancelled match, got %v", err)
	}
}

func TestLifecycleService_AutoTransitionLive(t *testing.T) {
	matchRepo := memory.NewMatchRepository()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	ids := &sequenceIDGenerator{}
	matchService := NewMatchService(matchRepo, teamRepo, ids, nil, nil)

	notifier := &recordingNotifier{}
	lifecycle := NewLifecycleService(matchRepo, notifier, nil)

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	lifecycle.now = func() time.Time { return now }

	due, err := matchService.Create(t.Context(), operatorActor, cricketCreateInput(now.Add(-5*time.Minute)))
	if err != nil {
		t.Fatalf("create due match failed: %v", err)
	}
	futureIn := cricketCreateInput(now.Add(2 * time.Hour))
	futureIn.Team1ID = memory.TeamIDEmerald
	futureIn.Team2ID = memory.TeamIDSaffron
	future, err := matchService.Create(t.Context(), operatorActor, futureIn)
	if err != nil {
		t.Fatalf("create future match failed: %v", err)
	}

	count, err := lifecycle.AutoTransitionLive(t.Context())
	if err != nil {
		t.Fatalf("auto transition failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 transition, got %d", count)
	}

	dueRec, _, err := matchRepo.GetByID(t.Context(), due.ID)
	if err != nil {
		t.Fatalf("get due match failed: %v", err)
	}
	if dueRec.Status != match.StatusLive {
		t.Fatalf("expected due match live, got %s", dueRec.Status)
	}
	if got := dueRec.AuditTrail[len(dueRec.AuditTrail)-1]; got.Actor != "system" || got.Reason != match.AuditReasonAutoLive {
		t.Fatalf("expected system audit entry, got %+v", got)
	}

	futureRec, _, err := matchRepo.GetByID(t.Context(), future.ID)
	if err != nil {
		t.Fatalf("get future match failed: %v", err)
	}
	if futureRec.Status != match.StatusScheduled {
		t.Fatalf("future match must stay scheduled, got %s", futureRec.Status)
	}

	// Idempotent: a second scan finds nothing due.
	count, err = lifecycle.AutoTransitionLive(t.Context())
	if err != nil {
		t.Fatalf("second scan failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transitions on re-run, got %d", count)
	}
	if len(notifier.Events()) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(notifier.Events()))
	}
}
