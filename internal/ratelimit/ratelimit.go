// Package ratelimit implements per-client, per-class admission control with
// a sliding time window.
package ratelimit

import (
	"sync"
	"time"
)

// ClassLimit configures one named operation class.
type ClassLimit struct {
	MaxRequests   int `yaml:"max_requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// DefaultClasses returns the built-in class table: tight for command
// execution, loose for generic API calls, medium for file search.
func DefaultClasses() map[string]ClassLimit {
	return map[string]ClassLimit{
		"command":     {MaxRequests: 60, WindowSeconds: 60},
		"api_request": {MaxRequests: 1000, WindowSeconds: 3600},
		"file_search": {MaxRequests: 20, WindowSeconds: 60},
	}
}

type entry struct {
	ts    time.Time
	count int
}

// Limiter tracks request windows per (identifier, class) key. It is the only
// state shared across concurrent requests and all key updates happen under
// one lock so two concurrent checks cannot both be admitted on a stale count.
type Limiter struct {
	mu      sync.Mutex
	classes map[string]ClassLimit
	windows map[string][]entry
	now     func() time.Time
	stop    chan struct{}
}

// New creates a Limiter with the given class table and starts a background
// sweep that drops identifiers whose entries have all aged out.
func New(classes map[string]ClassLimit) *Limiter {
	if len(classes) == 0 {
		classes = DefaultClasses()
	}
	l := &Limiter{
		classes: classes,
		windows: make(map[string][]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Close stops the background sweep goroutine.
func (l *Limiter) Close() {
	close(l.stop)
}

// Allow reports whether a request from identifier under the given class is
// admitted, recording it when it is. Unknown classes are always allowed so
// new operation types are never blocked before a limit is assigned.
func (l *Limiter) Allow(identifier, class string) bool {
	limit, ok := l.classes[class]
	if !ok {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := identifier + "|" + class
	now := l.now()
	retained := l.purgeLocked(key, now, limit)

	total := 0
	for _, e := range retained {
		total += e.count
	}
	if total >= limit.MaxRequests {
		return false
	}

	l.windows[key] = append(retained, entry{ts: now, count: 1})
	return true
}

// Remaining returns how many requests the identifier has left in the current
// window, or -1 when the class has no configured limit.
func (l *Limiter) Remaining(identifier, class string) int {
	limit, ok := l.classes[class]
	if !ok {
		return -1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := identifier + "|" + class
	retained := l.purgeLocked(key, l.now(), limit)
	l.windows[key] = retained

	total := 0
	for _, e := range retained {
		total += e.count
	}
	if total >= limit.MaxRequests {
		return 0
	}
	return limit.MaxRequests - total
}

// Limit returns the configured maximum for a class, or 0 when unknown.
func (l *Limiter) Limit(class string) int {
	return l.classes[class].MaxRequests
}

// Window returns the configured window duration for a class.
func (l *Limiter) Window(class string) time.Duration {
	return time.Duration(l.classes[class].WindowSeconds) * time.Second
}

// purgeLocked drops entries older than the trailing window. Callers must
// hold l.mu.
func (l *Limiter) purgeLocked(key string, now time.Time, limit ClassLimit) []entry {
	windowStart := now.Add(-time.Duration(limit.WindowSeconds) * time.Second)
	retained := l.windows[key][:0]
	for _, e := range l.windows[key] {
		if e.ts.After(windowStart) {
			retained = append(retained, e)
		}
	}
	return retained
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, entries := range l.windows {
				live := false
				for _, e := range entries {
					// Keep the key while any entry could still fall
					// inside the largest configured window.
					if now.Sub(e.ts) < l.maxWindowLocked() {
						live = true
						break
					}
				}
				if !live {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *Limiter) maxWindowLocked() time.Duration {
	max := time.Minute
	for _, c := range l.classes {
		if w := time.Duration(c.WindowSeconds) * time.Second; w > max {
			max = w
		}
	}
	return max
}
