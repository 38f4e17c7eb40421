package memory

import (
	"testing"
	"time"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
)

func storedMatch(id, sport, status string, updatedAt time.Time) match.Record {
	return match.Record{
		ID:          id,
		Team1ID:     TeamIDAzure,
		Team2ID:     TeamIDCrimson,
		SportName:   sport,
		Venue:       "Main Ground",
		ScheduledAt: updatedAt,
		Format:      match.FormatStandard,
		Status:      status,
		Version:     1,
		CreatedAt:   updatedAt,
		UpdatedAt:   updatedAt,
	}
}

func TestMatchRepository_GetReturnsDetachedCopy(t *testing.T) {
	repo := NewMatchRepository()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	rec := storedMatch("match-001", match.SportCricket, match.StatusLive, at)
	rec.Cricket = &cricket.CricketData{Innings: 1, ThisOver: []string{"4"}}
	rec.AuditTrail = []match.AuditEntry{{Actor: "op-1", Reason: match.AuditReasonInitialized, At: at}}
	if err := repo.Create(t.Context(), rec); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, exists, err := repo.GetByID(t.Context(), "match-001")
	if err != nil || !exists {
		t.Fatalf("get failed: exists=%v err=%v", exists, err)
	}

	// Mutating the returned copy must not leak into the store.
	got.Cricket.Team1.Runs = 99
	got.Cricket.ThisOver[0] = "6"
	got.AuditTrail[0].Actor = "intruder"

	again, _, err := repo.GetByID(t.Context(), "match-001")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Cricket.Team1.Runs != 0 || again.Cricket.ThisOver[0] != "4" {
		t.Fatalf("cricket data leaked: %+v", again.Cricket)
	}
	if again.AuditTrail[0].Actor != "op-1" {
		t.Fatalf("audit trail leaked: %+v", again.AuditTrail)
	}
}

func TestMatchRepository_ListFiltersAndOrders(t *testing.T) {
	repo := NewMatchRepository()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	records := []match.Record{
		storedMatch("match-001", match.SportCricket, match.StatusLive, base),
		storedMatch("match-002", "Volleyball", match.StatusScheduled, base.Add(time.Hour)),
		storedMatch("match-003", match.SportCricket, match.StatusCompleted, base.Add(2*time.Hour)),
	}
	for _, rec := range records {
		if err := repo.Create(t.Context(), rec); err != nil {
			t.Fatalf("create %s failed: %v", rec.ID, err)
		}
	}

	all, err := repo.List(t.Context(), match.ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	// Most recently updated first.
	if all[0].ID != "match-003" || all[2].ID != "match-001" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].ID, all[1].ID, all[2].ID)
	}

	live, err := repo.List(t.Context(), match.ListFilter{Status: match.StatusLive})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(live) != 1 || live[0].ID != "match-001" {
		t.Fatalf("status filter: %+v", live)
	}

	cricketOnly, err := repo.List(t.Context(), match.ListFilter{Sport: "crick"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(cricketOnly) != 2 {
		t.Fatalf("sport filter: expected 2, got %d", len(cricketOnly))
	}

	limited, err := repo.List(t.Context(), match.ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "match-003" {
		t.Fatalf("limit: %+v", limited)
	}
}

func TestMatchRepository_Delete(t *testing.T) {
	repo := NewMatchRepository()
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	if err := repo.Create(t.Context(), storedMatch("match-001", match.SportCricket, match.StatusScheduled, at)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := repo.Delete(t.Context(), "match-001")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(t.Context(), "match-001")
	if err != nil || deleted {
		t.Fatalf("second delete: deleted=%v err=%v", deleted, err)
	}
	if _, exists, _ := repo.GetByID(t.Context(), "match-001"); exists {
		t.Fatal("record still present after delete")
	}
}
