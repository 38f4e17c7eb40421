package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/infrastructure/repository/memory"
)

func TestMatchService_Create_SeedsAuditTrail(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	now := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	rec, err := service.Create(t.Context(), operatorActor, cricketCreateInput(now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if rec.ID != "match-001" {
		t.Fatalf("expected id match-001, got %s", rec.ID)
	}
	if rec.Status != match.StatusScheduled {
		t.Fatalf("expected scheduled, got %s", rec.Status)
	}
	if rec.Version != 1 {
		t.Fatalf("expected version 1, got %d", rec.Version)
	}
	if rec.Format != match.FormatStandard {
		t.Fatalf("expected default format, got %s", rec.Format)
	}
	if len(rec.AuditTrail) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(rec.AuditTrail))
	}
	entry := rec.AuditTrail[0]
	if entry.Reason != match.AuditReasonInitialized || entry.Actor != operatorActor.UserID {
		t.Fatalf("unexpected seed entry %+v", entry)
	}
	if !entry.At.Equal(now) {
		t.Fatalf("expected audit timestamp %v, got %v", now, entry.At)
	}
}

func TestMatchService_Create_UnknownTeamRejected(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	in := cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	in.Team2ID = "team-ghost"

	_, err := service.Create(t.Context(), operatorActor, in)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMatchService_Update_ScorePatchAppendsOneAuditEntry(t *testing.T) {
	service, _, notifier := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	score1, score2 := 42, 17
	updated, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{
		ScoreTeam1: &score1,
		ScoreTeam2: &score2,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.ScoreTeam1 != 42 || updated.ScoreTeam2 != 17 {
		t.Fatalf("expected 42-17, got %d-%d", updated.ScoreTeam1, updated.ScoreTeam2)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}
	if len(updated.AuditTrail) != 2 {
		t.Fatalf("expected two audit entries, got %d", len(updated.AuditTrail))
	}
	last := updated.AuditTrail[1]
	if last.Reason != match.AuditReasonScoreUpdate || last.ScoreTeam1 != 42 || last.ScoreTeam2 != 17 {
		t.Fatalf("unexpected audit entry %+v", last)
	}

	events := notifier.Events()
	if len(events) != 1 || events[0].ScoreTeam1 != 42 {
		t.Fatalf("expected one score event, got %+v", events)
	}
}

func TestMatchService_Update_CustomNoteBecomesAuditReason(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	score := 10
	updated, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{
		ScoreTeam1: &score,
		Note:       "First innings closed",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := updated.AuditTrail[len(updated.AuditTrail)-1].Reason; got != "First innings closed" {
		t.Fatalf("expected custom reason, got %q", got)
	}
}

func TestMatchService_Update_NonScorePatchSkipsAudit(t *testing.T) {
	service, _, notifier := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	venue := "Quad"
	updated, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{Venue: &venue})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Venue != "Quad" {
		t.Fatalf("expected venue patched, got %q", updated.Venue)
	}
	if len(updated.AuditTrail) != 1 {
		t.Fatalf("venue-only patch must not append audit, got %d entries", len(updated.AuditTrail))
	}
	if len(notifier.Events()) != 0 {
		t.Fatal("venue-only patch must not publish")
	}
}

func TestMatchService_Update_StatusToLiveSeedsCricketData(t *testing.T) {
	service, repo, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Cricket != nil {
		t.Fatal("scheduled match must not carry cricket data yet")
	}

	live := match.StatusLive
	updated, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{Status: &live})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Cricket == nil {
		t.Fatal("go-live patch must seed cricket data")
	}
	if updated.Cricket.Innings != 1 || updated.Cricket.Toss != nil {
		t.Fatalf("expected zeroed cricket document, got %+v", updated.Cricket)
	}

	stored, exists, err := repo.GetByID(t.Context(), created.ID)
	if err != nil || !exists {
		t.Fatalf("re-read failed: exists=%v err=%v", exists, err)
	}
	if stored.Cricket == nil {
		t.Fatal("seeded cricket data must be persisted")
	}
}

func TestMatchService_Update_TerminalMatchRejected(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	completed := match.StatusCompleted
	if _, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{Status: &completed}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	score := 1
	_, err = service.Update(t.Context(), operatorActor, created.ID, UpdateInput{ScoreTeam1: &score})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on terminal match, got %v", err)
	}
}

func TestMatchService_Update_InvalidTransitionRejected(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	live := match.StatusLive
	if _, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{Status: &live}); err != nil {
		t.Fatalf("go live failed: %v", err)
	}

	scheduled := match.StatusScheduled
	_, err = service.Update(t.Context(), operatorActor, created.ID, UpdateInput{Status: &scheduled})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict moving live back to scheduled, got %v", err)
	}
}

func TestMatchService_Update_StaleVersionRejected(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	venue := "Quad"
	if _, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{Venue: &venue}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	score := 9
	_, err = service.Update(t.Context(), operatorActor, created.ID, UpdateInput{
		ScoreTeam1:      &score,
		ExpectedVersion: created.Version,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestMatchService_Get_ResolvesTeamNames(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mvp := memory.TeamIDAzure
	if _, err := service.Update(t.Context(), operatorActor, created.ID, UpdateInput{MVPTeamID: &mvp}); err != nil {
		t.Fatalf("set mvp failed: %v", err)
	}

	details, err := service.Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if details.Team1Name != "Azure House" || details.Team2Name != "Crimson House" {
		t.Fatalf("expected resolved names, got %q and %q", details.Team1Name, details.Team2Name)
	}
	if details.MVPName != "Azure House" {
		t.Fatalf("expected mvp name resolved, got %q", details.MVPName)
	}
}

func TestMatchService_Delete(t *testing.T) {
	service, _, _ := newTestMatchService("match-001")

	created, err := service.Create(t.Context(), operatorActor, cricketCreateInput(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.Delete(t.Context(), operatorActor, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := service.Delete(t.Context(), operatorActor, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if _, err := service.Get(t.Context(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
