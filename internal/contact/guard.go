package contact

import (
	"context"
	"sync"
)

// Guard admits one outstanding submission per key, typically the client IP.
// Forms are built per request, so the check has to live outside them.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard returns an empty guard.
func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Submit runs f.Submit unless key already has a submission outstanding, in
// which case it returns ErrInFlight without contacting the backend.
func (g *Guard) Submit(ctx context.Context, key string, f *Form, s Sender) error {
	if !g.acquire(key) {
		MetricSubmissions.WithLabelValues("busy").Inc()
		return ErrInFlight
	}
	defer g.release(key)
	return f.Submit(ctx, s)
}

func (g *Guard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return false
	}
	g.active[key] = struct{}{}
	return true
}

func (g *Guard) release(key string) {
	g.mu.Lock()
	delete(g.active, key)
	g.mu.Unlock()
}
