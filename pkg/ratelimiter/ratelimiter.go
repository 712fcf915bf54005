// Package ratelimiter implements token-bucket rate limiting.
package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter defines the limiter interface
type RateLimiter interface {
	TakeToken() bool
}

// TokenBucket is a classic token bucket refilled at a fixed per-second rate.
type TokenBucket struct {
	capacity   int64
	tokens     int64
	refillRate int64
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a bucket with the given capacity and refill rate
// (tokens per second). Non-positive values are clamped to 1.
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}

	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// TakeToken removes one token, reporting whether one was available.
func (tb *TokenBucket) TakeToken() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	tokensToAdd := int64(elapsed.Seconds()) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// KeyedBuckets maintains an independent token bucket per key (e.g. per
// client IP), creating buckets lazily.
type KeyedBuckets struct {
	capacity   int64
	refillRate int64
	buckets    map[string]*TokenBucket
	mu         sync.Mutex
}

// NewKeyedBuckets creates a keyed bucket set; each key gets its own bucket
// with the given capacity and refill rate.
func NewKeyedBuckets(capacity, refillRate int64) *KeyedBuckets {
	return &KeyedBuckets{
		capacity:   capacity,
		refillRate: refillRate,
		buckets:    make(map[string]*TokenBucket),
	}
}

// TakeToken removes a token from the bucket belonging to key.
func (kb *KeyedBuckets) TakeToken(key string) bool {
	kb.mu.Lock()
	bucket, ok := kb.buckets[key]
	if !ok {
		bucket = NewTokenBucket(kb.capacity, kb.refillRate)
		kb.buckets[key] = bucket
	}
	kb.mu.Unlock()

	return bucket.TakeToken()
}

// Len returns the number of tracked keys.
func (kb *KeyedBuckets) Len() int {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return len(kb.buckets)
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
