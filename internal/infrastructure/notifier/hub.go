package notifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/itsSambuddha/secons-api/internal/platform/logging"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

// Hub fans score events out to in-process subscribers and, when
// configured, to an external webhook. Delivery is best effort end to
// end: a full subscriber channel drops the event, a webhook failure is
// logged and swallowed, and Publish never blocks the caller.
type Hub struct {
	logger     *logging.Logger
	pool       *ants.Pool
	client     *http.Client
	webhookURL string

	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan usecase.ScoreEvent
}

type Config struct {
	Workers        int
	WebhookURL     string
	WebhookTimeout time.Duration
}

func NewHub(cfg Config, logger *logging.Logger) (*Hub, error) {
	if logger == nil {
		logger = logging.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}
	timeout := cfg.WebhookTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create notifier pool: %w", err)
	}

	return &Hub{
		logger:     logger,
		pool:       pool,
		client:     &http.Client{Timeout: timeout},
		webhookURL: strings.TrimSpace(cfg.WebhookURL),
		subs:       make(map[string]map[int]chan usecase.ScoreEvent),
	}, nil
}

// Subscribe registers a buffered channel for one match id, or for all
// matches when matchID is empty. The returned cancel func must be
// called to release the channel.
func (h *Hub) Subscribe(matchID string, buffer int) (<-chan usecase.ScoreEvent, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan usecase.ScoreEvent, buffer)

	h.mu.Lock()
	h.nextID++
	subID := h.nextID
	if h.subs[matchID] == nil {
		h.subs[matchID] = make(map[int]chan usecase.ScoreEvent)
	}
	h.subs[matchID][subID] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if chans, ok := h.subs[matchID]; ok {
			delete(chans, subID)
			if len(chans) == 0 {
				delete(h.subs, matchID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish hands the event to the worker pool and returns immediately.
func (h *Hub) Publish(ctx context.Context, event usecase.ScoreEvent) {
	if err := h.pool.Submit(func() { h.deliver(event) }); err != nil {
		// Pool saturated or released; the broadcast is lossy on purpose.
		h.logger.WarnContext(ctx, "score event dropped", "match_id", event.MatchID, "error", err)
	}
}

func (h *Hub) deliver(event usecase.ScoreEvent) {
	h.mu.RLock()
	targets := make([]chan usecase.ScoreEvent, 0, 4)
	for _, key := range []string{event.MatchID, ""} {
		for _, ch := range h.subs[key] {
			targets = append(targets, ch)
		}
	}
	h.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- event:
		default:
		}
	}

	if h.webhookURL != "" {
		if err := h.postWebhook(event); err != nil {
			h.logger.Warn("score webhook failed", "match_id", event.MatchID, "error", err)
		}
	}
}

func (h *Hub) postWebhook(event usecase.ScoreEvent) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return crerr.Wrap(err, "encode score event")
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.webhookURL, strings.NewReader(buf.String()))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return crerr.Wrap(err, "post score webhook")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode >= http.StatusBadRequest {
		return crerr.Newf("score webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases the worker pool. Pending deliveries may be dropped.
func (h *Hub) Close() {
	h.pool.Release()
}
