package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock returns a limiter whose time only moves when advance is called.
func fakeClock(limit int, window time.Duration) (*RateLimiter, func(time.Duration)) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(limit, window)
	rl.now = func() time.Time { return now }
	return rl, func(d time.Duration) { now = now.Add(d) }
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter, _ := fakeClock(3, time.Second)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("192.168.1.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("192.168.1.1"), "4th request should be blocked")
	assert.True(t, limiter.Allow("192.168.1.2"), "other hosts are counted separately")
}

func TestRateLimiter_WindowExpiration(t *testing.T) {
	limiter, advance := fakeClock(2, 500*time.Millisecond)

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.1")
	assert.False(t, limiter.Allow("192.168.1.1"))

	advance(600 * time.Millisecond)
	assert.True(t, limiter.Allow("192.168.1.1"))
}

func TestRateLimiter_SweepForgetsIdleHosts(t *testing.T) {
	limiter, advance := fakeClock(5, 100*time.Millisecond)

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.2")
	limiter.Allow("192.168.1.3")
	assert.Len(t, limiter.requests, 3)

	advance(150 * time.Millisecond)
	limiter.Allow("192.168.1.4")
	assert.Len(t, limiter.requests, 1)
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(10, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				limiter.Allow("192.168.1.1")
			}
		}()
	}
	wg.Wait()

	// 15 requests against a limit of 10
	assert.False(t, limiter.Allow("192.168.1.1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter, _ := fakeClock(1, time.Minute)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	request := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusAccepted, request("10.0.0.1:5000"))
	// Same host, different source port
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:5001"))
	assert.Equal(t, http.StatusAccepted, request("10.0.0.2:5000"))
}
