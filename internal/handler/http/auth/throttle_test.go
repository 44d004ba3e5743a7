package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_PerKeyBuckets(t *testing.T) {
	th := NewThrottle(60, 2)
	now := time.Unix(1_700_000_000, 0)
	th.now = func() time.Time { return now }

	assert.True(t, th.Allow("a"))
	assert.True(t, th.Allow("a"))
	assert.False(t, th.Allow("a"))
	assert.True(t, th.Allow("b"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, th.Allow("a"), "one token refills per second at 60/min")
}

func TestThrottle_SweepsIdleVisitors(t *testing.T) {
	th := NewThrottle(60, 1)
	now := time.Unix(1_700_000_000, 0)
	th.now = func() time.Time { return now }

	th.Allow("a")
	th.Allow("b")
	assert.Equal(t, 2, th.Len())

	now = now.Add(11 * time.Minute)
	th.Allow("c")
	assert.Equal(t, 1, th.Len())
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:5555"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	assert.Equal(t, "203.0.113.9", clientIP(r))

	r.RemoteAddr = "bogus"
	assert.Equal(t, "bogus", clientIP(r))
}
