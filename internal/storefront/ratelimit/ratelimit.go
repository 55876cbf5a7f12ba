// Package ratelimit implements a fixed-window request counter keyed by
// client address.
package ratelimit

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

type window struct {
	start time.Time
	count int
}

// Limiter allows at most limit hits per key in each window.
type Limiter struct {
	limit      int
	window     time.Duration
	trustProxy bool
	now        func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

func New(limit int, w time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  w,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// TrustProxyHeaders makes the middleware key on the first X-Forwarded-For
// entry. Enable it only behind a proxy that overwrites the header.
func (l *Limiter) TrustProxyHeaders(trust bool) *Limiter {
	l.trustProxy = trust
	return l
}

// Allow records a hit for key. When the key is over its limit it returns
// false and the time left until the current window closes.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count >= l.limit {
		return false, w.start.Add(l.window).Sub(now)
	}
	w.count++
	return true, 0
}

// Sweep drops windows that have already closed.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, k)
			n++
		}
	}
	return n
}

// Run sweeps expired windows once per window length until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	if l.window <= 0 {
		<-ctx.Done()
		return
	}
	t := time.NewTicker(l.window)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

// Middleware rejects over-limit requests with 429 and a Retry-After header
// in whole seconds.
func (l *Limiter) Middleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, l.trustProxy)
			ok, wait := l.Allow(ip)
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				log.Warn(r.Context(), "rate limited", "ip", ip, "path", r.URL.Path)
				httpx.WriteError(r.Context(), w, log, common.ErrorRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the connection's remote host. With trustProxy set the
// first X-Forwarded-For entry wins when present.
func ClientIP(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
