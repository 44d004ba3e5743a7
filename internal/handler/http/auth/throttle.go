package auth

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle is a per-client token bucket built on x/time/rate.
type Throttle struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewThrottle allows perMinute events per client with the given burst.
func NewThrottle(perMinute, burst int) *Throttle {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow consumes one token for key and reports whether it was available.
func (t *Throttle) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweep(now)

	v, ok := t.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep drops idle visitors; the caller holds t.mu.
func (t *Throttle) sweep(now time.Time) {
	if now.Sub(t.lastSweep) < t.idleTTL {
		return
	}
	t.lastSweep = now
	for k, v := range t.visitors {
		if now.Sub(v.lastSeen) > t.idleTTL {
			delete(t.visitors, k)
		}
	}
}

// Len returns the number of tracked clients.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visitors)
}

// clientIP is the host part of RemoteAddr. Forwarding headers are not
// trusted here; put the service behind a proxy that rewrites RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
