package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

const liveCacheKey = "live-matches"

// ListLiveMatches feeds the polling scoreboard. Responses are cached
// for a short TTL so a burst of pollers costs one store read.
func (h *Handler) ListLiveMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveMatches")
	defer span.End()

	if cached, ok := h.liveCache.Get(ctx, liveCacheKey); ok {
		if items, ok := cached.([]liveMatchDTO); ok {
			writeSuccess(ctx, w, http.StatusOK, items)
			return
		}
	}

	records, err := h.matchService.ListLive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list live matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]liveMatchDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, liveMatchToDTO(ctx, rec))
	}

	h.liveCache.Set(ctx, liveCacheKey, items)
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	details, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	// The public board only exists once a match has gone live; scheduled
	// and cancelled matches are not disclosed here.
	if details.Status != match.StatusLive && details.Status != match.StatusCompleted {
		writeError(ctx, w, fmt.Errorf("%w: no scoreboard for match %s", usecase.ErrNotFound, matchID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(ctx, details))
}

const streamHeartbeat = 15 * time.Second

// StreamLiveEvents pushes score events over server-sent events as an
// alternative to polling. A matchId query param narrows the stream to
// one match; without it every match's events are included. Delivery
// shares the notifier's best-effort semantics: a slow reader misses
// events rather than blocking scorers.
func (h *Handler) StreamLiveEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok || h.events == nil {
		writeError(ctx, w, fmt.Errorf("%w: event streaming unavailable", usecase.ErrDependencyUnavailable))
		return
	}

	matchID := strings.TrimSpace(r.URL.Query().Get("matchId"))
	events, cancel := h.events.Subscribe(matchID, 16)
	defer cancel()

	// The server-wide write deadline would cut the stream short; the
	// connection lives until the client goes away.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case event := <-events:
			payload, err := sonic.Marshal(event)
			if err != nil {
				h.logger.WarnContext(ctx, "encode score event failed", "match_id", event.MatchID, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: score\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

type liveMatchDTO struct {
	ID             string               `json:"id"`
	Team1ID        string               `json:"team1Id"`
	Team2ID        string               `json:"team2Id"`
	SportName      string               `json:"sportName"`
	Venue          string               `json:"venue"`
	RoundName      string               `json:"roundName,omitempty"`
	Status         string               `json:"status"`
	ScoreTeam1     int                  `json:"scoreTeam1"`
	ScoreTeam2     int                  `json:"scoreTeam2"`
	CricketData    *cricket.CricketData `json:"cricketData,omitempty"`
	RunsNeeded     int                  `json:"runsNeeded,omitempty"`
	BallsRemaining int                  `json:"ballsRemaining,omitempty"`
	Version        int64                `json:"version"`
}

type scoreboardDTO struct {
	liveMatchDTO
	Team1Name  string          `json:"team1Name"`
	Team2Name  string          `json:"team2Name"`
	AuditTrail []auditEntryDTO `json:"auditTrail"`
}

func liveMatchToDTO(ctx context.Context, rec match.Record) liveMatchDTO {
	ctx, span := startSpan(ctx, "httpapi.liveMatchToDTO")
	defer span.End()

	dto := liveMatchDTO{
		ID:          rec.ID,
		Team1ID:     rec.Team1ID,
		Team2ID:     rec.Team2ID,
		SportName:   rec.SportName,
		Venue:       rec.Venue,
		RoundName:   rec.RoundName,
		Status:      rec.Status,
		ScoreTeam1:  rec.ScoreTeam1,
		ScoreTeam2:  rec.ScoreTeam2,
		CricketData: rec.Cricket.Clone(),
		Version:     rec.Version,
	}
	if rec.Cricket != nil {
		dto.RunsNeeded = rec.Cricket.RunsNeeded()
		dto.BallsRemaining = rec.Cricket.BallsRemaining()
	}
	return dto
}

func scoreboardToDTO(ctx context.Context, details usecase.MatchDetails) scoreboardDTO {
	ctx, span := startSpan(ctx, "httpapi.scoreboardToDTO")
	defer span.End()

	base := matchToDTO(ctx, details.Record)
	return scoreboardDTO{
		liveMatchDTO: liveMatchToDTO(ctx, details.Record),
		Team1Name:    details.Team1Name,
		Team2Name:    details.Team2Name,
		AuditTrail:   base.AuditTrail,
	}
}
