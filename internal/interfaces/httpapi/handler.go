package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/itsSambuddha/secons-api/internal/platform/cache"
	"github.com/itsSambuddha/secons-api/internal/usecase"
)

// EventSource exposes the notifier hub's in-process subscription side
// to the live event stream.
type EventSource interface {
	Subscribe(matchID string, buffer int) (<-chan usecase.ScoreEvent, func())
}

type Handler struct {
	matchService        *usecase.MatchService
	lifecycleService    *usecase.LifecycleService
	scoringService      *usecase.ScoringService
	teamService         *usecase.TeamService
	announcementService *usecase.AnnouncementService
	liveCache           *cache.Store
	events              EventSource
	logger              *slog.Logger
	validator           *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	lifecycleService *usecase.LifecycleService,
	scoringService *usecase.ScoringService,
	teamService *usecase.TeamService,
	announcementService *usecase.AnnouncementService,
	liveCache *cache.Store,
	events EventSource,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		matchService:        matchService,
		lifecycleService:    lifecycleService,
		scoringService:      scoringService,
		teamService:         teamService,
		announcementService: announcementService,
		liveCache:           liveCache,
		events:              events,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
