package httpapi

import (
	"log/slog"
	"net/http"
)

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *slog.Logger,
	corsAllowedOrigins []string,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerOperatorRoutes(mux, handler, verifier)
	registerInternalJobRoutes(mux, handler, internalJobToken)

	// Assembled inside out: the recovery net sits closest to the
	// handlers so a panic still receives CORS headers, a log line and
	// a trace; tracing wraps everything.
	var root http.Handler = mux
	root = recoverPanic(logger, root)
	root = CORS(corsAllowedOrigins, root)
	root = RequestLogging(logger, root)
	return RequestTracing(root)
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
