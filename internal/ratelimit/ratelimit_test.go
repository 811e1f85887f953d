package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)
			defer rl.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow("10.0.0.1") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)
	defer rl.Stop()

	// Exhaust one client
	rl.Allow("10.0.0.1")
	if rl.Allow("10.0.0.1") {
		t.Error("first client should be exhausted")
	}

	// Another client address still has its full burst
	if !rl.Allow("10.0.0.2") {
		t.Error("second client should be independent and allowed")
	}
}

func TestKeyedRateLimiter_WaitContextCancelled(t *testing.T) {
	rl := New(0.1, 1) // Very slow: 1 request per 10 seconds
	defer rl.Stop()

	// Exhaust the burst
	rl.Allow("10.0.0.1")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx, "10.0.0.1")
	if err == nil {
		t.Error("Wait() should fail when context canceled")
	}
}

func TestMiddleware(t *testing.T) {
	rl := New(1, 2)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/upload", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2 passes, third gets throttled
	if got := do("10.0.0.1:4242"); got != http.StatusOK {
		t.Errorf("first request = %d, want 200", got)
	}
	if got := do("10.0.0.1:4243"); got != http.StatusOK {
		t.Errorf("second request = %d, want 200", got)
	}
	if got := do("10.0.0.1:4244"); got != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", got)
	}

	// Different client address is unaffected
	if got := do("10.0.0.2:4242"); got != http.StatusOK {
		t.Errorf("other client request = %d, want 200", got)
	}
}
