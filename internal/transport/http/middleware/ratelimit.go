package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"hrrecords/internal/transport/http/api"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

type RateLimitOption func(*windowLimiter)

func WithKeyFunc(fn KeyFunc) RateLimitOption {
	return func(l *windowLimiter) {
		if fn != nil {
			l.key = fn
		}
	}
}

// RateLimit applies one fixed-window limit to every request it wraps.
func RateLimit(limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	l := newWindowLimiter(limit, window, actorKey)
	for _, opt := range opts {
		opt(l)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l.admit(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// MutationRateLimit throttles writes only. Login is limited per client IP and
// per submitted email at a quarter of the base limit; performance mutations
// are limited per authenticated actor.
func MutationRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	loginLimit := max(limit/4, 1)
	login := []*windowLimiter{
		newWindowLimiter(loginLimit, window, ClientIP),
		newWindowLimiter(loginLimit, window, LoginEmailKey),
	}
	mutations := []*windowLimiter{newWindowLimiter(limit, window, actorKey)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var chain []*windowLimiter
			if isMutation(r.Method) {
				path := strings.TrimPrefix(r.URL.Path, "/api/v1")
				switch {
				case path == "/auth/login":
					chain = login
				case strings.HasPrefix(path, "/performance/"):
					chain = mutations
				}
			}
			for _, l := range chain {
				if !l.admit(w, r) {
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// LoginEmailKey buckets login attempts by the lower-cased email in a JSON body,
// falling back to the client IP. The body is restored for the handler.
func LoginEmailKey(r *http.Request) string {
	if email := peekJSONString(r, "email"); email != "" {
		return "email:" + strings.ToLower(email)
	}
	return ClientIP(r)
}

func actorKey(r *http.Request) string {
	if user, ok := GetUser(r.Context()); ok && user.UserID != "" {
		return "user:" + user.UserID
	}
	return ClientIP(r)
}

// ClientIP prefers the first X-Forwarded-For hop over the socket address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}

func peekJSONString(r *http.Request, field string) string {
	if r.Body == nil || !strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload map[string]any
	if json.Unmarshal(raw, &payload) != nil {
		return ""
	}
	value, _ := payload[field].(string)
	return strings.TrimSpace(value)
}

type window struct {
	hits    int
	resetAt time.Time
}

type decision struct {
	allowed   bool
	remaining int
	resetIn   time.Duration
}

type windowLimiter struct {
	limit  int
	period time.Duration
	key    KeyFunc

	mu        sync.Mutex
	windows   map[string]*window
	nextSweep time.Time
}

func newWindowLimiter(limit int, period time.Duration, key KeyFunc) *windowLimiter {
	return &windowLimiter{
		limit:   limit,
		period:  period,
		key:     key,
		windows: make(map[string]*window),
	}
}

// take counts one hit for key at now. Expired windows are swept at most once
// per period so idle keys do not accumulate.
func (l *windowLimiter) take(key string, now time.Time) decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, win := range l.windows {
			if now.After(win.resetAt) {
				delete(l.windows, k)
			}
		}
		l.nextSweep = now.Add(l.period)
	}

	win, ok := l.windows[key]
	if !ok || now.After(win.resetAt) {
		win = &window{resetAt: now.Add(l.period)}
		l.windows[key] = win
	}
	win.hits++
	return decision{
		allowed:   win.hits <= l.limit,
		remaining: max(l.limit-win.hits, 0),
		resetIn:   win.resetAt.Sub(now),
	}
}

func (l *windowLimiter) admit(w http.ResponseWriter, r *http.Request) bool {
	if l.limit <= 0 {
		return true
	}
	key := l.key(r)
	if key == "" {
		key = ClientIP(r)
	}
	d := l.take(key, time.Now())

	resetSec := int((d.resetIn + time.Second - 1) / time.Second)
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetSec))
	if d.allowed {
		return true
	}

	w.Header().Set("Retry-After", strconv.Itoa(max(resetSec, 1)))
	slog.Warn("rate limit exceeded",
		"key", key,
		"method", r.Method,
		"path", r.URL.Path,
		"limit", l.limit,
	)
	api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
	return false
}
