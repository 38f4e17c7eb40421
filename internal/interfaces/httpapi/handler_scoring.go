package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/itsSambuddha/secons-api/internal/domain/cricket"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

func (h *Handler) GetScoringStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoringStatus")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	status, err := h.scoringService.Status(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoring status failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordToss(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordToss")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req tossRequest
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

	status, err := h.scoringService.SetToss(ctx, matchID, req.Winner, req.Decision)
	if err != nil {
		h.logger.WarnContext(ctx, "record toss failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordBatsmen(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordBatsmen")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req batsmenRequest
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

	status, err := h.scoringService.SetBatsmen(ctx, matchID, req.Striker, req.NonStriker)
	if err != nil {
		h.logger.WarnContext(ctx, "record batsmen failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordBall(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordBall")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req ballRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	status, err := h.scoringService.Ball(ctx, matchID, req.Runs)
	if err != nil {
		h.logger.WarnContext(ctx, "record ball failed", "match_id", matchID, "runs", req.Runs, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordWicket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordWicket")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	status, err := h.scoringService.Wicket(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "record wicket failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordExtra(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordExtra")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req extraRequest
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

	status, err := h.scoringService.Extra(ctx, matchID, cricket.ExtraKind(req.Kind))
	if err != nil {
		h.logger.WarnContext(ctx, "record extra failed", "match_id", matchID, "kind", req.Kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordNewBatter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordNewBatter")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req playerNameRequest
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

	status, err := h.scoringService.NewBatter(ctx, matchID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "record new batter failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) RecordNewBowler(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordNewBowler")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req playerNameRequest
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

	status, err := h.scoringService.NewBowler(ctx, matchID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "record new bowler failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoringStatusToDTO(ctx, status))
}

func (h *Handler) SyncScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncScore")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	rec, err := h.scoringService.Sync(ctx, principal, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync score failed", "match_id", matchID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.liveCache.Invalidate()
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, rec))
}

type tossRequest struct {
	Winner   string `json:"winner" validate:"required,max=80"`
	Decision string `json:"decision" validate:"required,oneof=bat bowl"`
}

type batsmenRequest struct {
	Striker    string `json:"striker" validate:"required,max=80"`
	NonStriker string `json:"nonStriker" validate:"required,max=80"`
}

type ballRequest struct {
	Runs int `json:"runs"`
}

type extraRequest struct {
	Kind string `json:"kind" validate:"required,oneof=wide noball"`
}

type playerNameRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type scoringStatusDTO struct {
	MatchID     string               `json:"matchId"`
	State       string               `json:"state"`
	Prompt      string               `json:"prompt,omitempty"`
	CricketData *cricket.CricketData `json:"cricketData"`
}

func scoringStatusToDTO(ctx context.Context, status usecase.ScoringStatus) scoringStatusDTO {
	ctx, span := startSpan(ctx, "httpapi.scoringStatusToDTO")
	defer span.End()

	return scoringStatusDTO{
		MatchID:     status.MatchID,
		State:       string(status.State),
		Prompt:      status.Prompt,
		CricketData: status.Data,
	}
}
