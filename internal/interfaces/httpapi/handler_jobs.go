package httpapi

import (
	"net/http"
)

// RunAutoLiveJob promotes due scheduled matches to live. The scheduler
// loop does the same work on a timer; this endpoint exists for cron
// runners and manual kicks.
func (h *Handler) RunAutoLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAutoLiveJob")
	defer span.End()

	promoted, err := h.lifecycleService.AutoTransitionLive(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "auto-live job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if promoted > 0 {
		h.liveCache.Invalidate()
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int{"promoted": promoted})
}
