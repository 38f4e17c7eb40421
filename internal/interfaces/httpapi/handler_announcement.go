package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/itsSambuddha/secons-api/internal/domain/announcement"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAnnouncements")
	defer span.End()

	items, err := h.announcementService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list announcements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]announcementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, announcementToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateAnnouncement")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req announcementRequest
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

	item, err := h.announcementService.Create(ctx, principal, usecase.AnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		Audience: req.Audience,
		Pinned:   req.Pinned,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create announcement failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, announcementToDTO(ctx, item))
}

func (h *Handler) PinAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PinAnnouncement")
	defer span.End()

	announcementID := strings.TrimSpace(r.PathValue("announcementID"))
	var req pinRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.announcementService.SetPinned(ctx, announcementID, req.Pinned)
	if err != nil {
		h.logger.WarnContext(ctx, "pin announcement failed", "announcement_id", announcementID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, announcementToDTO(ctx, item))
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAnnouncement")
	defer span.End()

	announcementID := strings.TrimSpace(r.PathValue("announcementID"))
	if err := h.announcementService.Delete(ctx, announcementID); err != nil {
		h.logger.WarnContext(ctx, "delete announcement failed", "announcement_id", announcementID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": announcementID, "deleted": "true"})
}

type announcementRequest struct {
	Title    string `json:"title" validate:"required,max=160"`
	Body     string `json:"body" validate:"required,max=4000"`
	Audience string `json:"audience" validate:"max=80"`
	Pinned   bool   `json:"pinned"`
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

type announcementDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience,omitempty"`
	PostedBy string `json:"postedBy"`
	PostedAt string `json:"postedAt"`
	Pinned   bool   `json:"pinned"`
}

func announcementToDTO(ctx context.Context, v announcement.Announcement) announcementDTO {
	ctx, span := startSpan(ctx, "httpapi.announcementToDTO")
	defer span.End()

	return announcementDTO{
		ID:       v.ID,
		Title:    v.Title,
		Body:     v.Body,
		Audience: v.Audience,
		PostedBy: v.PostedBy,
		PostedAt: v.PostedAt.UTC().Format(time.RFC3339),
		Pinned:   v.Pinned,
	}
}
