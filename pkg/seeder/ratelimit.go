package seeder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSeedInterval is the minimum spacing between seed invocations for
// one user.
const DefaultSeedInterval = 3 * time.Second

// RateLimiter tracks the last seed invocation per user. Process-local UX
// throttling, not a correctness guarantee.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[uuid.UUID]time.Time
	now      func() time.Time
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		last:     make(map[uuid.UUID]time.Time),
		now:      time.Now,
	}
}

// Allow records the invocation and reports whether it falls outside the
// minimum interval since the previous one for this user.
func (l *RateLimiter) Allow(owner uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if last, ok := l.last[owner]; ok && now.Sub(last) < l.interval {
		return false
	}
	l.last[owner] = now
	return true
}
