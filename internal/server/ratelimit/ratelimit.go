// Package ratelimit throttles API clients with per-endpoint token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for one client+endpoint pair. Tokens refill
// continuously at rate tokens/second up to capacity. lastSeen feeds the
// idle-bucket sweep.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	updated  time.Time
	lastSeen time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		updated:  now,
		lastSeen: now,
	}
}

// refillLocked advances the bucket to now. Caller holds mu.
func (b *bucket) refillLocked(now time.Time) {
	b.tokens += now.Sub(b.updated).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.updated = now
}

// take consumes one token if available and reports the remaining count
// and the time at which the bucket will be full again.
func (b *bucket) take() (ok bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.refillLocked(now)
	b.lastSeen = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		ok = true
	}

	reset = now
	if b.tokens < b.capacity {
		deficit := b.capacity - b.tokens
		reset = now.Add(time.Duration(deficit / b.rate * float64(time.Second)))
	}
	return ok, int(b.tokens), reset
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Info reports the outcome of a rate limit check, used to populate
// X-RateLimit response headers.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings. Per-endpoint limits live in
// EndpointConfigs; anything unmatched falls back to the default limit.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// Limiter tracks one token bucket per client+endpoint+method key and
// periodically sweeps buckets idle for over an hour.
type Limiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	config  *Config
	sweeper *time.Ticker
	done    chan struct{}
}

// NewLimiter creates a limiter. A nil config enables a permissive
// default (1000 requests per minute per client).
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.sweeper = time.NewTicker(config.CleanupInterval)
		l.done = make(chan struct{})
		go l.sweepLoop()
	}

	return l
}

// Allow reports whether a request from clientID to method+endpoint may
// proceed, consuming a token when it does.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if ec.Limit <= 0 {
		// Unlimited endpoint, such as the health check.
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	b := l.bucketFor(key, ec)

	ok, remaining, reset := b.take()

	info := Info{
		Allowed:   ok,
		Limit:     ec.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !ok {
		if ra := time.Until(reset); ra > 0 {
			info.RetryAfter = ra
		}
	}
	return ok, info
}

func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.RLock()
	b, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return b
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	rate := float64(ec.Limit) / ec.Window.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.buckets[key]; ok {
		return existing
	}
	b = newBucket(capacity, rate)
	l.buckets[key] = b
	return b
}

func (l *Limiter) sweepLoop() {
	for {
		select {
		case <-l.sweeper.C:
			l.sweep(time.Now().Add(-1 * time.Hour))
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) sweep(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop halts the idle-bucket sweeper.
func (l *Limiter) Stop() {
	if l.sweeper != nil {
		l.sweeper.Stop()
	}
	if l.done != nil {
		close(l.done)
	}
}
