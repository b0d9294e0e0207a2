package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/profile-card/internal/config"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTokenBucket_Take(t *testing.T) {
	now := time.Now()
	bucket := newTokenBucket(10, 1.0, now) // 10 tokens, 1 token per second

	// Should allow 10 requests immediately (burst)
	for i := 0; i < 10; i++ {
		if allowed, _, _, _ := bucket.take(now); !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	// 11th request should be denied (no tokens left)
	allowed, remaining, retryAfter, _ := bucket.take(now)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", remaining)
	}
	if retryAfter != time.Second {
		t.Errorf("Expected retry after 1s, got %v", retryAfter)
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	now := time.Now()
	bucket := newTokenBucket(10, 1.0, now)

	for i := 0; i < 10; i++ {
		bucket.take(now)
	}

	now = now.Add(1100 * time.Millisecond)
	if allowed, _, _, _ := bucket.take(now); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _, _, _ := bucket.take(now); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestTokenBucket_ResetTime(t *testing.T) {
	now := time.Now()
	bucket := newTokenBucket(10, 1.0, now)

	for i := 0; i < 5; i++ {
		bucket.take(now)
	}

	_, remaining, _, resetTime := bucket.take(now)
	if remaining != 4 {
		t.Errorf("Expected 4 remaining tokens, got %d", remaining)
	}
	if want := now.Add(6 * time.Second); !resetTime.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, resetTime)
	}
}

func TestLimiter_PerRouteLimits(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(FromConfig(config.RateLimitConfig{
		Enabled:        true,
		ParsePerMinute: 2,
		CardPerMinute:  3,
	}), clock.Now)
	defer limiter.Stop()

	tests := []struct {
		name    string
		path    string
		method  string
		allowed int
		limit   int
	}{
		{name: "parse", path: ParsePath, method: "POST", allowed: 2, limit: 2},
		{name: "card", path: CardPath, method: "POST", allowed: 3, limit: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.allowed; i++ {
				allowed, info := limiter.Allow("10.0.0.1", tt.path, tt.method)
				if !allowed {
					t.Fatalf("Expected request %d to be allowed", i+1)
				}
				if info.Limit != tt.limit {
					t.Errorf("Expected limit %d, got %d", tt.limit, info.Limit)
				}
			}

			allowed, info := limiter.Allow("10.0.0.1", tt.path, tt.method)
			if allowed {
				t.Fatal("Expected request over the limit to be denied")
			}
			if info.RetryAfter <= 0 || info.RetryAfter > time.Minute {
				t.Errorf("Expected retry after within a minute, got %v", info.RetryAfter)
			}
		})
	}
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(FromConfig(config.RateLimitConfig{Enabled: true, ParsePerMinute: 1, CardPerMinute: 1}), clock.Now)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("a", ParsePath, "POST"); !allowed {
		t.Fatal("Expected first request from a to be allowed")
	}
	if allowed, _ := limiter.Allow("a", ParsePath, "POST"); allowed {
		t.Fatal("Expected second request from a to be denied")
	}
	if allowed, _ := limiter.Allow("b", ParsePath, "POST"); !allowed {
		t.Fatal("Expected request from b to be allowed")
	}

	clock.Advance(time.Minute)
	if allowed, _ := limiter.Allow("a", ParsePath, "POST"); !allowed {
		t.Fatal("Expected a to be allowed after the window refilled")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.RateLimitConfig
		client string
		path   string
		method string
	}{
		{name: "disabled", cfg: config.RateLimitConfig{Enabled: false, ParsePerMinute: 1}, client: "a", path: ParsePath, method: "POST"},
		{name: "health", cfg: config.RateLimitConfig{Enabled: true, ParsePerMinute: 1}, client: "a", path: "/health", method: "GET"},
		{name: "unmatched route", cfg: config.RateLimitConfig{Enabled: true, ParsePerMinute: 1}, client: "a", path: "/other", method: "GET"},
		{name: "whitelisted", cfg: config.RateLimitConfig{Enabled: true, ParsePerMinute: 1, Whitelist: []string{"a"}}, client: "a", path: ParsePath, method: "POST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewLimiter(FromConfig(tt.cfg))
			defer limiter.Stop()

			for i := 0; i < 5; i++ {
				allowed, info := limiter.Allow(tt.client, tt.path, tt.method)
				if !allowed {
					t.Fatalf("Expected request %d to be allowed", i+1)
				}
				if info.Limit != 0 {
					t.Errorf("Expected no limit, got %d", info.Limit)
				}
			}
		})
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(FromConfig(config.RateLimitConfig{Enabled: true, ParsePerMinute: 50, CardPerMinute: 1}))
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("client", ParsePath, "POST"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// A few tokens may refill during the run
	if allowedCount < 50 || allowedCount > 52 {
		t.Errorf("Expected about 50 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(FromConfig(config.RateLimitConfig{Enabled: true, ParsePerMinute: 1, CardPerMinute: 1}), clock.Now)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), ParsePath, "POST")
	}
	clock.Advance(2 * time.Hour)
	limiter.Allow("fresh", ParsePath, "POST")

	limiter.cleanupBuckets(clock.Now().Add(-1 * time.Hour))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if len(limiter.buckets) != 1 {
		t.Errorf("Expected 1 bucket after cleanup, got %d", len(limiter.buckets))
	}
	if _, ok := limiter.buckets["fresh:"+ParsePath+":POST"]; !ok {
		t.Error("Expected the recently used bucket to survive cleanup")
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(FromConfig(config.RateLimitConfig{Enabled: true, ParsePerMinute: 1, CardPerMinute: 1}))
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: ParsePath, Method: "POST", Limit: 10},
		{Path: "/api/", Method: "GET", Limit: 5},
		{Path: "/api/cards/", Method: "GET", Limit: 2},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact", path: ParsePath, method: "POST", wantLimit: 10},
		{name: "prefix", path: "/api/anything", method: "GET", wantLimit: 5},
		{name: "longest prefix", path: "/api/cards/7", method: "GET", wantLimit: 2},
		{name: "health unlimited", path: "/health", method: "GET", wantLimit: 0},
		{name: "method mismatch", path: ParsePath, method: "GET", wantLimit: 5},
		{name: "no match", path: "/other", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a match")
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, got.Limit)
			}
		})
	}
}
