package seeder

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Busy reports whether owner has an event whose interval contains at,
// using the half-open test: an event ending exactly at the instant does
// not count as busy. A zero at means "now". Read-only.
func (e *Engine) Busy(ctx context.Context, owner uuid.UUID, at time.Time) (bool, error) {
	if at.IsZero() {
		at = e.now()
	}
	return e.store.BusyAt(ctx, owner, at.UTC())
}
