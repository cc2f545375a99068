package storage

import (
	"context"
	"sync"
	"time"
)

// Guard deduplicates inbound messages. Chat transports redeliver updates after
// reconnects; a message must only be turned into bets once.
type Guard interface {
	FirstSeen(ctx context.Context, key string) (bool, error)
	// Release forgets a claimed key so a redelivery is handled again.
	Release(ctx context.Context, key string) error
	Close() error
}

var (
	_ Guard = (*RedisGuard)(nil)
	_ Guard = (*MemoryGuard)(nil)
)

// DefaultGuardTTL is used when a guard is built with a non-positive TTL.
const DefaultGuardTTL = 10 * time.Minute

// MemoryGuard is the single-process Guard.
type MemoryGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	seen map[string]time.Time
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = DefaultGuardTTL
	}
	return &MemoryGuard{ttl: ttl, now: time.Now, seen: make(map[string]time.Time)}
}

func (g *MemoryGuard) FirstSeen(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, at := range g.seen {
		if now.Sub(at) >= g.ttl {
			delete(g.seen, k)
		}
	}
	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = now
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, key)
	return nil
}

func (g *MemoryGuard) Close() error { return nil }
