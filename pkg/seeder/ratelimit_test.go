package seeder

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRateLimiterRejectsInsideInterval(t *testing.T) {
	l := NewRateLimiter(3 * time.Second)
	now := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	owner := uuid.New()

	if !l.Allow(owner) {
		t.Fatal("first invocation rejected")
	}
	now = now.Add(time.Second)
	if l.Allow(owner) {
		t.Fatal("invocation inside interval allowed")
	}
	now = now.Add(3 * time.Second)
	if !l.Allow(owner) {
		t.Fatal("invocation after interval rejected")
	}
}

func TestRateLimiterIsPerUser(t *testing.T) {
	l := NewRateLimiter(3 * time.Second)
	a, b := uuid.New(), uuid.New()

	if !l.Allow(a) {
		t.Fatal("first invocation for a rejected")
	}
	if !l.Allow(b) {
		t.Fatal("b throttled by a's invocation")
	}
	if l.Allow(a) {
		t.Fatal("a allowed twice inside interval")
	}
}

func TestRateLimiterRejectionDoesNotExtendWindow(t *testing.T) {
	l := NewRateLimiter(3 * time.Second)
	now := time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	owner := uuid.New()

	l.Allow(owner)
	now = now.Add(2 * time.Second)
	l.Allow(owner) // rejected, must not reset the timestamp
	now = now.Add(1500 * time.Millisecond)
	if !l.Allow(owner) {
		t.Fatal("interval measured from a rejected attempt")
	}
}
