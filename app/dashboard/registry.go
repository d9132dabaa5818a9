package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type registryEntry struct {
	board    *Dashboard
	lastSeen time.Time
}

// Registry keeps one Dashboard per admin session. Dashboards not used for a
// while are evicted and rebuilt on the session's next request.
type Registry struct {
	mu      sync.Mutex
	boards  map[string]*registryEntry
	factory func() *Dashboard
	now     func() time.Time
}

func NewRegistry(factory func() *Dashboard) *Registry {
	return &Registry{boards: make(map[string]*registryEntry), factory: factory, now: time.Now}
}

func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func NewID() string {
	return uuid.NewString()
}

// Get returns the dashboard of id, creating it on first use. created is
// true when the caller got a fresh, unloaded dashboard.
func (r *Registry) Get(id string) (d *Dashboard, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.boards[id]; ok {
		e.lastSeen = r.now()
		return e.board, false
	}
	d = r.factory()
	r.boards[id] = &registryEntry{board: d, lastSeen: r.now()}
	return d, true
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, id)
}

// EvictIdle drops dashboards not requested within idle and reports how
// many went.
func (r *Registry) EvictIdle(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, e := range r.boards {
		if e.lastSeen.Before(cutoff) {
			delete(r.boards, id)
			evicted++
		}
	}
	return evicted
}

// Sweep calls EvictIdle every interval until ctx is done.
func (r *Registry) Sweep(ctx context.Context, interval, idle time.Duration, onEvict func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(idle); n > 0 && onEvict != nil {
				onEvict(n)
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boards)
}
