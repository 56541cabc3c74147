package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ledgerline/taskboard-api/internal/api/shared"
	"github.com/ledgerline/taskboard-api/internal/platform/logger"
)

// Trace adds a correlation ID to the request context and binds a
// request-scoped logger carrying it. Apply early in the chain so every
// subsequent handler and store call logs with the same request_id.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetRequestID(r.Context())
		requestID := shared.GetRequestID(ctx)

		log := slog.With(slog.String("request_id", requestID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
