package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/example/travel-planner/internal/logging"
)

// MemberIDHeader carries the asserted identity of the calling member.
// Authentication happens upstream; an empty header means an anonymous call.
const MemberIDHeader = "X-Member-ID"

// RequestLogger attaches a request-scoped logger to the context and logs
// request start/completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				"request_id", chimiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

// ResolvePrincipal reads the member id header into a Principal. Handlers that
// require a caller use requirePrincipal to reject anonymous requests.
func ResolvePrincipal() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			memberID := strings.TrimSpace(r.Header.Get(MemberIDHeader))
			if memberID != "" {
				ctx := ContextWithPrincipal(r.Context(), Principal{MemberID: memberID})
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
