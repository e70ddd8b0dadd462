// Package ratelimit implements fixed-window request limiting keyed by client
// IP. Counters live behind a Store so buckets can be held in process memory or
// shared across replicas via Redis.
package ratelimit

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"
)

// Store tracks request counts per key within a fixed window. Incr registers
// one request and returns the count accumulated in the current window,
// including this request. The window resets wholesale once it elapses; a
// burst straddling the boundary can admit up to twice the nominal rate.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

// Limiter rejects requests once a key exceeds limit hits per window.
type Limiter struct {
	store   Store
	prefix  string
	limit   int
	window  time.Duration
	message string
}

// New creates a limiter. The prefix namespaces keys so independent limiters
// sharing a store do not count each other's hits. message is the localized
// error returned on rejection.
func New(store Store, prefix string, limit int, window time.Duration, message string) *Limiter {
	return &Limiter{
		store:   store,
		prefix:  prefix,
		limit:   limit,
		window:  window,
		message: message,
	}
}

// Allow registers one hit for identity and reports whether it is still within
// the limit.
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, error) {
	count, err := l.store.Incr(ctx, l.prefix+":"+identity, l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

// Middleware gates requests by client IP. Store failures fail open and are
// logged.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, err := l.Allow(r.Context(), clientIP(r))
		if err != nil {
			log.Printf("rate limit store error (%s): %v", l.prefix, err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": l.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
