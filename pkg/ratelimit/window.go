package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultCapacity bounds the number of tracked identities.
	DefaultCapacity = 500
	// DefaultCleanupInterval is how often expired windows are reclaimed.
	DefaultCleanupInterval = time.Minute
)

type entry struct {
	count   int
	resetAt time.Time
}

// Window is an in-memory fixed-window limiter. Each key gets a counter and
// a window deadline, created lazily on first use. State lives for the life
// of the process; a background loop reclaims expired windows and a capacity
// cap with oldest-window eviction keeps memory bounded even under a flood
// of distinct keys.
type Window struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit    int
	window   time.Duration
	capacity int

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

// Option configures a Window limiter.
type Option func(*Window)

// WithCapacity caps the number of identities tracked at once.
func WithCapacity(n int) Option {
	return func(w *Window) {
		if n > 0 {
			w.capacity = n
		}
	}
}

// WithCleanupInterval sets how often expired windows are reclaimed.
func WithCleanupInterval(d time.Duration) Option {
	return func(w *Window) {
		if d > 0 {
			w.cleanupInterval = d
		}
	}
}

// NewWindow creates a fixed-window limiter allowing limit requests per
// window per key and starts its cleanup loop. Call Close to stop it.
func NewWindow(limit int, window time.Duration, opts ...Option) (*Window, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidWindow
	}

	w := &Window{
		entries:         make(map[string]*entry),
		limit:           limit,
		window:          window,
		capacity:        DefaultCapacity,
		cleanupInterval: DefaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	go w.cleanupLoop()

	return w, nil
}

// Allow implements Limiter. The whole check-and-increment runs under one
// lock so concurrent requests for the same key cannot lose updates. A
// rejected request does not increment the counter.
func (w *Window) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	e, ok := w.entries[key]

	// Open a fresh window on first use or once the old one elapsed.
	if !ok || !now.Before(e.resetAt) {
		if !ok && len(w.entries) >= w.capacity {
			w.evictOldestLocked()
		}
		e = &entry{count: 1, resetAt: now.Add(w.window)}
		w.entries[key] = e
		return &Result{
			Allowed:   true,
			Limit:     w.limit,
			Remaining: w.limit - 1,
			ResetAt:   e.resetAt,
		}, nil
	}

	if e.count < w.limit {
		e.count++
		return &Result{
			Allowed:   true,
			Limit:     w.limit,
			Remaining: w.limit - e.count,
			ResetAt:   e.resetAt,
		}, nil
	}

	return &Result{
		Allowed:   false,
		Limit:     w.limit,
		Remaining: 0,
		ResetAt:   e.resetAt,
	}, nil
}

// Reset implements Limiter.
func (w *Window) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.entries, key)
	return nil
}

// Len returns the number of identities currently tracked.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.entries)
}

// Close stops the cleanup loop. Safe for repeated calls.
func (w *Window) Close() error {
	w.cleanupOnce.Do(func() {
		close(w.stopCleanup)
	})
	return nil
}

// evictOldestLocked drops the entry whose window ends soonest. Linear scan
// is fine at the capacities this limiter is configured with.
func (w *Window) evictOldestLocked() {
	var oldestKey string
	var oldestReset time.Time

	for key, e := range w.entries {
		if oldestKey == "" || e.resetAt.Before(oldestReset) {
			oldestKey = key
			oldestReset = e.resetAt
		}
	}

	if oldestKey != "" {
		delete(w.entries, oldestKey)
	}
}

func (w *Window) cleanupLoop() {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.cleanup()
		case <-w.stopCleanup:
			return
		}
	}
}

func (w *Window) cleanup() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for key, e := range w.entries {
		if !now.Before(e.resetAt) {
			delete(w.entries, key)
		}
	}
}
