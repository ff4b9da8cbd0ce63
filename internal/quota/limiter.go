package quota

import (
	"context"
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by caller. Check never
// mutates; Record opens a window or increments the live one.
type Limiter interface {
	Check(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key string) error
}

// Policy describes one quota: at most Limit records per Window
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps windows in process memory
type MemoryLimiter struct {
	policy  Policy
	now     func() time.Time
	mu      sync.Mutex
	windows map[string]*window
}

// NewMemoryLimiter creates an in-process limiter for a policy
func NewMemoryLimiter(policy Policy) *MemoryLimiter {
	return &MemoryLimiter{
		policy:  policy,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (l *MemoryLimiter) Check(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !l.now().Before(w.resetAt) {
		return true, nil
	}
	return w.count < l.policy.Limit, nil
}

func (l *MemoryLimiter) Record(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.policy.Window)}
		l.sweep(now)
		return nil
	}
	w.count++
	return nil
}

// sweep drops expired windows so the map does not grow without bound
func (l *MemoryLimiter) sweep(now time.Time) {
	if len(l.windows) < 1024 {
		return
	}
	for k, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, k)
		}
	}
}
