package auth

import (
	"sync"
	"time"
)

// maxBuckets bounds memory; full buckets are dropped once it is exceeded.
const maxBuckets = 10000

// RateLimiter implements a token bucket per key (a client IP for logins)
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*tokenBucket
	maxTokens  float64
	refillRate float64 // tokens per second
	now        func() time.Time
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing rpm requests per minute per key.
// A non-positive rpm disables limiting.
func NewRateLimiter(rpm int) *RateLimiter {
	r := &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
	if rpm > 0 {
		// Burst of a sixth of a minute's budget, at least 3 attempts
		r.maxTokens = max(float64(rpm)/6, 3)
		r.refillRate = float64(rpm) / 60.0
	}
	return r
}

// Allow consumes a token for key. It returns false when key is throttled.
func (r *RateLimiter) Allow(key string) bool {
	if r.refillRate == 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.buckets[key]
	if !exists {
		if len(r.buckets) >= maxBuckets {
			r.pruneLocked(now)
		}
		bucket = &tokenBucket{tokens: r.maxTokens, lastRefill: now}
		r.buckets[key] = bucket
	}

	r.refillLocked(bucket, now)

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}

	return false
}

func (r *RateLimiter) refillLocked(b *tokenBucket, now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.tokens+elapsed*r.refillRate, r.maxTokens)
	b.lastRefill = now
}

func (r *RateLimiter) pruneLocked(now time.Time) {
	for key, b := range r.buckets {
		r.refillLocked(b, now)
		if b.tokens >= r.maxTokens {
			delete(r.buckets, key)
		}
	}
}

// RetryAfter returns how long key must wait for its next token.
func (r *RateLimiter) RetryAfter(key string) time.Duration {
	if r.refillRate == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.buckets[key]
	if !exists {
		return 0
	}
	r.refillLocked(bucket, r.now())
	if bucket.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - bucket.tokens) / r.refillRate * float64(time.Second))
}

// Remaining returns the whole tokens left for key, or -1 when unlimited.
func (r *RateLimiter) Remaining(key string) int {
	if r.refillRate == 0 {
		return -1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.buckets[key]
	if !exists {
		return int(r.maxTokens)
	}
	r.refillLocked(bucket, r.now())
	return int(bucket.tokens)
}
