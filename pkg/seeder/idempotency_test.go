package seeder

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIdempotencyGuardSuppressesWithinTTL(t *testing.T) {
	g := NewIdempotencyGuard(2 * time.Minute)
	key := Fingerprint(uuid.New(), time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), "req-1")

	if g.Seen(key) {
		t.Fatal("fresh key reported as seen")
	}
	g.Mark(key)
	if !g.Seen(key) {
		t.Fatal("marked key not reported as seen")
	}
}

func TestIdempotencyGuardExpires(t *testing.T) {
	g := NewIdempotencyGuard(2 * time.Minute)
	now := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }
	key := Fingerprint(uuid.New(), now, "req-1")

	g.Mark(key)
	now = now.Add(time.Minute)
	if !g.Seen(key) {
		t.Fatal("key expired before TTL")
	}
	now = now.Add(2 * time.Minute)
	if g.Seen(key) {
		t.Fatal("key still live after TTL")
	}
	if len(g.entries) != 0 {
		t.Fatalf("expired entry not evicted, %d left", len(g.entries))
	}
}

func TestIdempotencyGuardDistinguishesFingerprints(t *testing.T) {
	g := NewIdempotencyGuard(2 * time.Minute)
	owner := uuid.New()
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	g.Mark(Fingerprint(owner, monday, "req-1"))

	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"same fingerprint", Fingerprint(owner, monday, "req-1"), true},
		{"different token", Fingerprint(owner, monday, "req-2"), false},
		{"different window", Fingerprint(owner, monday.AddDate(0, 0, 7), "req-1"), false},
		{"different owner", Fingerprint(uuid.New(), monday, "req-1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Seen(tt.key); got != tt.want {
				t.Errorf("Seen = %t, want %t", got, tt.want)
			}
		})
	}
}
