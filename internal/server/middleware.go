package server

import (
	"log/slog"
	"net/http"
	"time"
)

// Headers set on every response.
const (
	headerAllowOrigin  = "Access-Control-Allow-Origin"
	headerAllowMethods = "Access-Control-Allow-Methods"
	headerCacheControl = "Cache-Control"
	headerContentType  = "Content-Type"

	contentTypeJSON = "application/json"
)

// commonHeaders sets the CORS, caching and content type headers before the
// handler runs, so error paths cannot skip them.
func commonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(headerAllowOrigin, "*")
		h.Set(headerAllowMethods, http.MethodGet)
		h.Set(headerCacheControl, "no-store")
		h.Set(headerContentType, contentTypeJSON)
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"channel", r.URL.Query().Get(channelParam),
				"status", rec.status,
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
