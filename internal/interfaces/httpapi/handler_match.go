package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/domain/match"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter := match.ListFilter{
		Status: strings.TrimSpace(query.Get("status")),
		Sport:  strings.TrimSpace(query.Get("sport")),
	}
	if filter.Status != "" && !match.IsValidStatus(filter.Status) {
		writeError(ctx, w, fmt.Errorf("%w: unknown status %q", usecase.ErrInvalidInput, filter.Status))
		return
	}
	if rawLimit := strings.TrimSpace(query.Get("limit")); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = limit
	}

	records, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, matchToDTO(ctx, rec))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	details, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailsToDTO(ctx, details))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createMatchRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: scheduledAt must be RFC 3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	rec, err := h.matchService.Create(ctx, principal, match.CreateInput{
		Team1ID:     req.Team1ID,
		Team2ID:     req.Team2ID,
		SportName:   req.SportName,
		Venue:       req.Venue,
		ScheduledAt: scheduledAt,
		RoundName:   req.RoundName,
		Format:      req.Format,
		ScoreTeam1:  req.ScoreTeam1,
		ScoreTeam2:  req.ScoreTeam2,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.liveCache.Invalidate()
	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, rec))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req updateMatchRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	rec, err := h.matchService.Update(ctx, principal, matchID, usecase.UpdateInput{
		ScoreTeam1:      req.ScoreTeam1,
		ScoreTeam2:      req.ScoreTeam2,
		Status:          req.Status,
		Cricket:         req.CricketData,
		Venue:           req.Venue,
		RoundName:       req.RoundName,
		MVPTeamID:       req.MVPTeamID,
		Note:            req.Note,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.liveCache.Invalidate()
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, rec))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.matchService.Delete(ctx, principal, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.scoringService.DropSession(matchID)
	h.liveCache.Invalidate()
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": matchID, "deleted": "true"})
}

func (h *Handler) TransitionMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransitionMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req transitionRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rec, err := h.lifecycleService.Transition(ctx, principal, matchID, req.Status, req.Note)
	if err != nil {
		h.logger.WarnContext(ctx, "transition match failed", "match_id", matchID, "to", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.liveCache.Invalidate()
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, rec))
}

type createMatchRequest struct {
	Team1ID     string `json:"team1Id" validate:"required"`
	Team2ID     string `json:"team2Id" validate:"required"`
	SportName   string `json:"sportName" validate:"required,max=80"`
	Venue       string `json:"venue" validate:"required,max=120"`
	ScheduledAt string `json:"scheduledAt" validate:"required"`
	RoundName   string `json:"roundName" validate:"max=80"`
	Format      string `json:"format" validate:"omitempty,oneof=standard heats timed"`
	ScoreTeam1  int    `json:"scoreTeam1" validate:"min=0"`
	ScoreTeam2  int    `json:"scoreTeam2" validate:"min=0"`
}

type updateMatchRequest struct {
	ScoreTeam1      *int                 `json:"scoreTeam1"`
	ScoreTeam2      *int                 `json:"scoreTeam2"`
	Status          *string              `json:"status"`
	CricketData     *cricket.CricketData `json:"cricketData"`
	Venue           *string              `json:"venue"`
	RoundName       *string              `json:"roundName"`
	MVPTeamID       *string              `json:"mvpTeamId"`
	Note            string               `json:"note"`
	ExpectedVersion int64                `json:"expectedVersion"`
}

type transitionRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled live completed cancelled"`
	Note   string `json:"note" validate:"max=200"`
}

type matchDTO struct {
	ID          string               `json:"id"`
	Team1ID     string               `json:"team1Id"`
	Team2ID     string               `json:"team2Id"`
	SportName   string               `json:"sportName"`
	Venue       string               `json:"venue"`
	ScheduledAt string               `json:"scheduledAt"`
	RoundName   string               `json:"roundName,omitempty"`
	Format      string               `json:"format,omitempty"`
	Status      string               `json:"status"`
	ScoreTeam1  int                  `json:"scoreTeam1"`
	ScoreTeam2  int                  `json:"scoreTeam2"`
	CricketData *cricket.CricketData `json:"cricketData,omitempty"`
	AuditTrail  []auditEntryDTO      `json:"auditTrail"`
	MVPTeamID   string               `json:"mvpTeamId,omitempty"`
	Version     int64                `json:"version"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

type matchDetailsDTO struct {
	matchDTO
	Team1Name string `json:"team1Name"`
	Team2Name string `json:"team2Name"`
	MVPName   string `json:"mvpName,omitempty"`
}

type auditEntryDTO struct {
	Actor      string `json:"actor"`
	ScoreTeam1 int    `json:"scoreTeam1"`
	ScoreTeam2 int    `json:"scoreTeam2"`
	Reason     string `json:"reason"`
	At         string `json:"at"`
}

func matchToDTO(ctx context.Context, rec match.Record) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	trail := make([]auditEntryDTO, 0, len(rec.AuditTrail))
	for _, entry := range rec.AuditTrail {
		trail = append(trail, auditEntryDTO{
			Actor:      entry.Actor,
			ScoreTeam1: entry.ScoreTeam1,
			ScoreTeam2: entry.ScoreTeam2,
			Reason:     entry.Reason,
			At:         entry.At.UTC().Format(time.RFC3339),
		})
	}

	return matchDTO{
		ID:          rec.ID,
		Team1ID:     rec.Team1ID,
		Team2ID:     rec.Team2ID,
		SportName:   rec.SportName,
		Venue:       rec.Venue,
		ScheduledAt: rec.ScheduledAt.UTC().Format(time.RFC3339),
		RoundName:   rec.RoundName,
		Format:      rec.Format,
		Status:      rec.Status,
		ScoreTeam1:  rec.ScoreTeam1,
		ScoreTeam2:  rec.ScoreTeam2,
		CricketData: rec.Cricket.Clone(),
		AuditTrail:  trail,
		MVPTeamID:   rec.MVPTeamID,
		Version:     rec.Version,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func matchDetailsToDTO(ctx context.Context, details usecase.MatchDetails) matchDetailsDTO {
	ctx, span := startSpan(ctx, "httpapi.matchDetailsToDTO")
	defer span.End()

	return matchDetailsDTO{
		matchDTO:  matchToDTO(ctx, details.Record),
		Team1Name: details.Team1Name,
		Team2Name: details.Team2Name,
		MVPName:   details.MVPName,
	}
}
