package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	common "github.com/rivio-api/rivio-api/pkg/domain"
)

// RequestLoggerMiddleware stamps a request id on every request (reusing an
// inbound X-Request-Id if the caller already supplied one), logs the
// request/response at completion, and attaches a request-scoped logger to
// context so downstream handlers and use cases can log with the same
// correlation fields without threading them through every call.
func RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		logger := slog.Default().With("request_id", requestID)
		ctx := context.WithValue(r.Context(), common.RequestIDKey, requestID)

		sw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		logger.InfoContext(ctx, "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
