package cache

import (
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	store := NewStore(time.Minute)

	if _, ok := store.Get(t.Context(), "live"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set(t.Context(), "live", []string{"match-001"})
	got, ok := store.Get(t.Context(), "live")
	if !ok {
		t.Fatal("expected hit")
	}
	if ids, _ := got.([]string); len(ids) != 1 || ids[0] != "match-001" {
		t.Fatalf("unexpected value: %v", got)
	}

	// Empty keys are never stored or served.
	store.Set(t.Context(), "", "x")
	if _, ok := store.Get(t.Context(), ""); ok {
		t.Fatal("empty key must miss")
	}
}

func TestStore_EntriesExpire(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	store.Set(t.Context(), "live", 1)
	if _, ok := store.Get(t.Context(), "live"); !ok {
		t.Fatal("expected hit before expiry")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(t.Context(), "live"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewStore(0)

	store.Set(t.Context(), "live", 1)
	time.Sleep(5 * time.Millisecond)
	if _, ok := store.Get(t.Context(), "live"); !ok {
		t.Fatal("zero-ttl entry must not expire")
	}
}

func TestStore_DeleteAndInvalidate(t *testing.T) {
	store := NewStore(time.Minute)

	store.Set(t.Context(), "live", 1)
	store.Set(t.Context(), "scoreboard:match-001", 2)

	store.Delete(t.Context(), "live")
	if _, ok := store.Get(t.Context(), "live"); ok {
		t.Fatal("expected miss after delete")
	}
	if _, ok := store.Get(t.Context(), "scoreboard:match-001"); !ok {
		t.Fatal("unrelated key must survive delete")
	}

	store.Invalidate()
	if _, ok := store.Get(t.Context(), "scoreboard:match-001"); ok {
		t.Fatal("expected miss after invalidate")
	}
}
