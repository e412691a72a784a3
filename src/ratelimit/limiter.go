package ratelimit

import (
	"log"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Store is the shared keyed store behind all limiters in the process.
// Entries carry their own TTL, so an idle key disappears after one window.
type Store struct {
	cache *ristretto.Cache
}

func NewStore() *Store {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100000, // number of keys to track frequency of
		MaxCost:     100000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize rate limit store: %v", err)
	}
	return &Store{cache: cache}
}

type window struct {
	mu    sync.Mutex
	calls []time.Time
}

// Limiter counts calls per key within a trailing window. Quota and window
// are fixed at construction, one limiter per call site.
type Limiter struct {
	store  *Store
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(store *Store, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one call for key and reports whether it fits the quota.
// A key evicted under memory pressure fails open: the caller is allowed
// rather than starved.
func (l *Limiter) Allow(key string) bool {
	cacheKey := l.prefix + ":" + key

	var win *window
	if v, ok := l.store.cache.Get(cacheKey); ok {
		win, _ = v.(*window)
	}
	if win == nil {
		win = &window{}
		if !l.store.cache.SetWithTTL(cacheKey, win, 1, l.window) {
			// Rejected by the admission policy; nothing to count against.
			return true
		}
		l.store.cache.Wait()
		// Re-read so concurrent creators converge on one entry.
		if v, ok := l.store.cache.Get(cacheKey); ok {
			if existing, ok := v.(*window); ok {
				win = existing
			}
		}
	}

	now := l.now()
	cutoff := now.Add(-l.window)

	win.mu.Lock()
	defer win.mu.Unlock()

	kept := win.calls[:0]
	for _, t := range win.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	win.calls = kept

	if len(win.calls) >= l.limit {
		return false
	}
	win.calls = append(win.calls, now)

	// Refresh the TTL so an active key outlives its first window.
	l.store.cache.SetWithTTL(cacheKey, win, 1, l.window)
	return true
}
