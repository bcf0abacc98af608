package routes_api

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerUserType = "X-User-Type"
)

// statusWriter captures the final status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", sw.status,
			"bytes", sw.bytes,
			"dur_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// rateLimitMiddleware allows limit requests per client IP per minute. Redis
// failures let the request through.
func rateLimitMiddleware(rl RateLimiter, limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rl:api:" + clientIP(r)
			allowed, n, err := rl.Allow(r.Context(), key, limit, time.Minute)
			if err != nil {
				slog.Warn("rate limiter unavailable", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			remaining := limit - n
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			if !allowed {
				w.Header().Set("Retry-After", "60")
				writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// actorFrom builds the audit actor from identity headers set by the gateway.
func actorFrom(r *http.Request) audit.Actor {
	a := audit.Actor{
		UserID:    r.Header.Get(headerUserID),
		UserName:  r.Header.Get(headerUserName),
		UserType:  r.Header.Get(headerUserType),
		RequestID: middleware.GetReqID(r.Context()),
		IP:        clientIP(r),
		At:        time.Now().UTC(),
	}
	if a.UserType == "" && a.UserID != "" {
		a.UserType = audit.UserTypeUser
	}
	return a
}
