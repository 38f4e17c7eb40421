package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/itsSambuddha/secons-api/internal/platform/logging"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

func waitForEvent(t *testing.T, ch <-chan usecase.ScoreEvent) usecase.ScoreEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for score event")
		return usecase.ScoreEvent{}
	}
}

func TestHub_DeliversToMatchAndWildcardSubscribers(t *testing.T) {
	hub, err := NewHub(Config{Workers: 2}, logging.NewNop())
	if err != nil {
		t.Fatalf("new hub failed: %v", err)
	}
	defer hub.Close()

	matchCh, cancelMatch := hub.Subscribe("match-001", 4)
	defer cancelMatch()
	allCh, cancelAll := hub.Subscribe("", 4)
	defer cancelAll()
	otherCh, cancelOther := hub.Subscribe("match-999", 4)
	defer cancelOther()

	hub.Publish(context.Background(), usecase.ScoreEvent{MatchID: "match-001", ScoreTeam1: 42})

	got := waitForEvent(t, matchCh)
	if got.MatchID != "match-001" || got.ScoreTeam1 != 42 {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got := waitForEvent(t, allCh); got.MatchID != "match-001" {
		t.Fatalf("wildcard subscriber got: %+v", got)
	}

	select {
	case event := <-otherCh:
		t.Fatalf("unrelated subscriber received %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CancelledSubscriberStopsReceiving(t *testing.T) {
	hub, err := NewHub(Config{Workers: 2}, logging.NewNop())
	if err != nil {
		t.Fatalf("new hub failed: %v", err)
	}
	defer hub.Close()

	ch, cancel := hub.Subscribe("match-001", 4)
	cancel()

	hub.Publish(context.Background(), usecase.ScoreEvent{MatchID: "match-001"})

	select {
	case event := <-ch:
		t.Fatalf("cancelled subscriber received %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PostsWebhook(t *testing.T) {
	var calls atomic.Int32
	received := make(chan usecase.ScoreEvent, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var event usecase.ScoreEvent
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("decode webhook body: %v", err)
		}
		received <- event
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hub, err := NewHub(Config{Workers: 2, WebhookURL: srv.URL}, logging.NewNop())
	if err != nil {
		t.Fatalf("new hub failed: %v", err)
	}
	defer hub.Close()

	hub.Publish(context.Background(), usecase.ScoreEvent{MatchID: "match-001", ScoreTeam1: 7, ScoreTeam2: 3})

	select {
	case event := <-received:
		if event.MatchID != "match-001" || event.ScoreTeam1 != 7 {
			t.Fatalf("unexpected webhook payload: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for webhook call")
	}
	if calls.Load() != 1 {
		t.Fatalf("webhook calls = %d, want 1", calls.Load())
	}
}

func TestHub_FullSubscriberChannelDropsEvent(t *testing.T) {
	hub, err := NewHub(Config{Workers: 1}, logging.NewNop())
	if err != nil {
		t.Fatalf("new hub failed: %v", err)
	}
	defer hub.Close()

	ch, cancel := hub.Subscribe("match-001", 1)
	defer cancel()

	for i := 0; i < 5; i++ {
		hub.Publish(context.Background(), usecase.ScoreEvent{MatchID: "match-001", ScoreTeam1: i})
	}

	// The buffer holds one event; the rest are dropped, never blocking
	// the publisher.
	waitForEvent(t, ch)
	time.Sleep(100 * time.Millisecond)
	if len(ch) > 1 {
		t.Fatalf("expected at most one buffered event, got %d", len(ch))
	}
}
