package ratelimit

import (
	"sync"
	"time"

	"github.com/cuemby/baliusd/pkg/types"
)

// window is a fixed-window counter for a single (consumer, rate) pair.
// The window resets the first time it's observed after its interval has
// elapsed, rather than on a ticker, so idle consumers cost nothing.
type window struct {
	mu    sync.Mutex
	start time.Time
	count int
}

// observe increments the window's count, resetting it first if interval
// has elapsed since it started, and reports the post-increment count.
func (w *window) observe(now time.Time, interval time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if now.Sub(w.start) >= interval {
		w.start = now
		w.count = 0
	}
	w.count++
	return w.count
}

// counterSet is the per-consumer windows, one per rate in their tier, in
// the same order as Tier.Rates.
type counterSet struct {
	rates   []types.Rate
	windows []*window
}

// Limiter enforces per-consumer rate limits against a fixed set of named
// tiers.
type Limiter struct {
	tiers map[string]types.Tier

	mu       sync.RWMutex
	counters map[string]*counterSet
}

// New builds a Limiter for the given tiers, keyed by Tier.Name.
func New(tiers []types.Tier) *Limiter {
	byName := make(map[string]types.Tier, len(tiers))
	for _, t := range tiers {
		byName[t.Name] = t
	}
	return &Limiter{
		tiers:    byName,
		counters: make(map[string]*counterSet),
	}
}

// Exceeded reports whether consumer has exceeded any rate window in
// their tier. A consumer whose tier is unrecognized is treated as
// exceeded, matching the fail-closed behavior of the original proxy.
func (l *Limiter) Exceeded(consumer types.Consumer) bool {
	tier, ok := l.tiers[consumer.Tier]
	if !ok {
		return true
	}

	set := l.counterSetFor(consumer.Key, tier)

	now := time.Now()
	for i, rate := range set.rates {
		if set.windows[i].observe(now, rate.Interval) > rate.Limit {
			return true
		}
	}
	return false
}

func (l *Limiter) counterSetFor(key string, tier types.Tier) *counterSet {
	l.mu.RLock()
	set, ok := l.counters[key]
	l.mu.RUnlock()
	if ok {
		return set
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if set, ok := l.counters[key]; ok {
		return set
	}

	set = &counterSet{rates: tier.Rates, windows: make([]*window, len(tier.Rates))}
	for i := range tier.Rates {
		set.windows[i] = &window{start: time.Now()}
	}
	l.counters[key] = set
	return set
}
