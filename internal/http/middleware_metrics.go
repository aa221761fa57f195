package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/doconnect/doconnect-web/internal/observability/statsd"
)

// Metrics returns a middleware that emits a counter and timing per request.
// Static assets and the health endpoint are excluded to keep the series
// focused on page and fragment traffic. A nil sink disables the middleware.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			tags := map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(ww.status),
			}
			sink.Count("http.request", 1, tags)
			sink.Timing("http.request.duration", time.Since(start), tags)
		})
	}
}
