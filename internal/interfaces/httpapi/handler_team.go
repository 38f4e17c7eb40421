package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/itsSambuddha/secons-api/internal/domain/team"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, item))
}

func (h *Handler) AwardTeamPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AwardTeamPoints")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req awardRequest
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

	item, err := h.teamService.AwardPoints(ctx, principal, teamID, usecase.AwardInput{
		EventRef: req.EventRef,
		Points:   req.Points,
		Position: req.Position,
		Reason:   req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "award points failed", "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, item))
}

type awardRequest struct {
	EventRef string `json:"eventRef" validate:"required,max=120"`
	Points   int    `json:"points" validate:"required"`
	Position int    `json:"position" validate:"min=0"`
	Reason   string `json:"reason" validate:"max=200"`
}

type teamDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	GroupLabel  string          `json:"groupLabel,omitempty"`
	Semester    string          `json:"semester,omitempty"`
	TotalPoints int             `json:"totalPoints"`
	Awards      []pointAwardDTO `json:"awards"`
}

type pointAwardDTO struct {
	EventRef  string `json:"eventRef"`
	Points    int    `json:"points"`
	Position  int    `json:"position,omitempty"`
	AwardedBy string `json:"awardedBy"`
	AwardedAt string `json:"awardedAt"`
	Reason    string `json:"reason,omitempty"`
}

func teamToDTO(ctx context.Context, v team.Team) teamDTO {
	ctx, span := startSpan(ctx, "httpapi.teamToDTO")
	defer span.End()

	awards := make([]pointAwardDTO, 0, len(v.Awards))
	for _, award := range v.Awards {
		awards = append(awards, pointAwardDTO{
			EventRef:  award.EventRef,
			Points:    award.Points,
			Position:  award.Position,
			AwardedBy: award.AwardedBy,
			AwardedAt: award.AwardedAt.UTC().Format(time.RFC3339),
			Reason:    award.Reason,
		})
	}

	return teamDTO{
		ID:          v.ID,
		Name:        v.Name,
		GroupLabel:  v.GroupLabel,
		Semester:    v.Semester,
		TotalPoints: v.TotalPoints,
		Awards:      awards,
	}
}
