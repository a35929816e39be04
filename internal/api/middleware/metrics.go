package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"plearn/backend/internal/metrics"
)

// statusWriter wraps http.ResponseWriter to capture status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics records request count and latency per normalized path.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses task IDs to keep label cardinality bounded.
func normalizePath(path string) string {
	const todoPrefix = "/api/todo/"
	if strings.HasPrefix(path, todoPrefix) && len(path) > len(todoPrefix) {
		return "/api/todo/:id"
	}
	if strings.HasPrefix(path, "/api/swagger/") {
		return "/api/swagger"
	}
	return path
}
