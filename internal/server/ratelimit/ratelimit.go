// Package ratelimit limits requests per client and route using token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info describes the outcome of a single Allow call.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	lim      *rate.Limiter
	limit    int
	lastSeen time.Time
}

// Limiter tracks a bucket per client and matched rule.
type Limiter struct {
	cfg     *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter; a nil config uses DefaultConfig. When enabled
// with a positive IdleTTL a background sweep drops idle buckets until Stop.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.IdleTTL > 0 {
		go l.sweepLoop(cfg.IdleTTL)
	}
	return l
}

// Allow consumes a token for clientID on the route and reports the bucket state.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Allow[clientID] {
		return true, Info{Allowed: true}
	}
	if l.cfg.Deny[clientID] {
		return false, Info{}
	}

	rule := l.cfg.Match(path, method)
	key := clientID + " " + method + " " + path
	if rule == nil {
		rule = &Rule{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow, Burst: l.cfg.DefaultLimit}
	} else {
		// Prefix rules share one bucket across all matching paths.
		key = clientID + " " + rule.Method + " " + rule.Path
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucket(key, rule, now)
	allowed := b.lim.AllowN(now, 1)
	tokens := b.lim.TokensAt(now)
	perSec := float64(b.lim.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(int(tokens), 0),
		ResetTime: now.Add(secondsToDuration((float64(b.lim.Burst()) - tokens) / perSec)),
	}
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / perSec)
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, rule *Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		burst := rule.Burst
		if burst <= 0 {
			burst = rule.Limit
		}
		every := rule.Window / time.Duration(rule.Limit)
		b = &bucket{lim: rate.NewLimiter(rate.Every(every), burst), limit: rule.Limit}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

func (l *Limiter) sweepLoop(ttl time.Duration) {
	t := time.NewTicker(ttl)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			l.sweep(ttl)
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets idle for longer than ttl.
func (l *Limiter) sweep(ttl time.Duration) {
	cutoff := l.now().Add(-ttl)
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
