package seeder

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testWeek(t *testing.T) Window {
	t.Helper()
	w, err := WindowFor(time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC), WindowWeek)
	if err != nil {
		t.Fatalf("WindowFor: %v", err)
	}
	return w
}

func TestGenerateRespectsPerDayMax(t *testing.T) {
	gen := NewGenerator()
	owner := uuid.New()
	w := testWeek(t)
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		cands := gen.Generate(rng, owner, w, 3)
		for day, list := range groupByDay(cands) {
			if len(list) > 3 {
				t.Fatalf("seed %d: day %s has %d candidates, cap 3", seed, day, len(list))
			}
		}
	}
}

func TestGenerateNoSameDayOverlap(t *testing.T) {
	gen := NewGenerator()
	owner := uuid.New()
	w := testWeek(t)
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		cands := gen.Generate(rng, owner, w, 5)
		for day, list := range groupByDay(cands) {
			for i := 0; i < len(list); i++ {
				for j := i + 1; j < len(list); j++ {
					a, b := list[i], list[j]
					if a.StartAt.Before(b.EndAt) && b.StartAt.Before(a.EndAt) {
						t.Fatalf("seed %d: day %s: overlap [%v,%v) vs [%v,%v)",
							seed, day, a.StartAt, a.EndAt, b.StartAt, b.EndAt)
					}
				}
			}
		}
	}
}

func TestGenerateStaysInsideEnvelope(t *testing.T) {
	gen := NewGenerator()
	owner := uuid.New()
	w := testWeek(t)
	rng := rand.New(rand.NewSource(7))
	for _, c := range gen.Generate(rng, owner, w, 5) {
		if c.StartAt.Hour() < gen.DayStartHour {
			t.Errorf("start hour %d before envelope start %d", c.StartAt.Hour(), gen.DayStartHour)
		}
		endHour := c.EndAt.Hour()
		if endHour == 0 && c.EndAt.Day() != c.StartAt.Day() {
			endHour = 24
		}
		if endHour > gen.DayEndHour {
			t.Errorf("end hour %d past envelope end %d", endHour, gen.DayEndHour)
		}
		dur := c.EndAt.Sub(c.StartAt)
		if dur < time.Hour || dur > 2*time.Hour {
			t.Errorf("duration %v outside 1-2h", dur)
		}
		if c.Title == "" {
			t.Error("empty title")
		}
		if !c.StartAt.Before(c.EndAt) {
			t.Errorf("start %v not before end %v", c.StartAt, c.EndAt)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	gen := NewGenerator()
	owner := uuid.New()
	w := testWeek(t)
	a := gen.Generate(rand.New(rand.NewSource(42)), owner, w, 4)
	b := gen.Generate(rand.New(rand.NewSource(42)), owner, w, 4)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].StartAt.Equal(b[i].StartAt) || a[i].Title != b[i].Title {
			t.Fatalf("candidate %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSampleCountDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 10000
	zero := 0
	for i := 0; i < n; i++ {
		c := sampleCount(rng, 5)
		if c < 0 || c > 4 {
			t.Fatalf("count %d outside weight table", c)
		}
		if c == 0 {
			zero++
		}
	}
	// Weighted at 45%; allow generous slack for the fixed seed.
	if zero < n*40/100 || zero > n*50/100 {
		t.Errorf("zero-count share = %d/%d, want roughly 45%%", zero, n)
	}
}

func TestSampleCountClampedToMax(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		if c := sampleCount(rng, 1); c > 1 {
			t.Fatalf("count %d exceeds max 1", c)
		}
	}
}
