package seeder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdempotencyTTL is how long a seed fingerprint suppresses repeats.
const DefaultIdempotencyTTL = 2 * time.Minute

// IdempotencyGuard is a time-bounded cache of seed request fingerprints.
// It is process-local, best effort, and intentionally loses its state on
// restart; the unique index on the event identity key is the backstop.
type IdempotencyGuard struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time // fingerprint -> expiry
	now     func() time.Time
}

func NewIdempotencyGuard(ttl time.Duration) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyGuard{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Fingerprint builds the cache key for a seed request.
func Fingerprint(owner uuid.UUID, windowStart time.Time, token string) string {
	return owner.String() + "|" + windowStart.UTC().Format(time.RFC3339) + "|" + token
}

// Seen reports whether a live record exists for key. Expired entries are
// evicted on every check.
func (g *IdempotencyGuard) Seen(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	for k, exp := range g.entries {
		if !exp.After(now) {
			delete(g.entries, k)
		}
	}
	exp, ok := g.entries[key]
	return ok && exp.After(now)
}

// Mark records key with a fresh expiry.
func (g *IdempotencyGuard) Mark(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries[key] = g.now().Add(g.ttl)
}
