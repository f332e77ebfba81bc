package seeder

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Candidate is a not-yet-persisted event produced by the generator.
type Candidate struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

var eventTitles = []string{"Class", "Study", "Gym", "Work", "Lunch", "Project", "Meeting"}

// countWeights is the per-day event count distribution, biased toward
// fewer events: index is the count, value the weight out of 100.
var countWeights = []int{45, 25, 15, 10, 5}

const (
	defaultDayStartHour = 8
	defaultDayEndHour   = 20
	placementAttempts   = 8
)

// Generator produces randomized day-scoped candidates inside a
// working-hours envelope. Candidates chosen for the same day never overlap
// each other; clashes with already-persisted events are the cap/top-up
// stages' concern.
type Generator struct {
	DayStartHour int
	DayEndHour   int
	Attempts     int
	Titles       []string
}

func NewGenerator() *Generator {
	return &Generator{
		DayStartHour: defaultDayStartHour,
		DayEndHour:   defaultDayEndHour,
		Attempts:     placementAttempts,
		Titles:       eventTitles,
	}
}

// Generate walks every day of the window and samples candidates for it.
func (g *Generator) Generate(rng *rand.Rand, owner uuid.UUID, w Window, perDayMax int) []Candidate {
	var out []Candidate
	for day := w.Start; day.Before(w.End); day = day.AddDate(0, 0, 1) {
		out = append(out, g.generateDay(rng, owner, day, perDayMax)...)
	}
	return out
}

// generateDay samples a target count for the day, then places each event
// with a bounded number of attempts. A slot that cannot be placed without
// overlap is dropped; an under-filled day is a normal outcome.
func (g *Generator) generateDay(rng *rand.Rand, owner uuid.UUID, day time.Time, perDayMax int) []Candidate {
	want := sampleCount(rng, perDayMax)
	chosen := make([]Candidate, 0, want)
	for i := 0; i < want; i++ {
		c, ok := g.place(rng, owner, day, chosen)
		if !ok {
			continue
		}
		chosen = append(chosen, c)
	}
	return chosen
}

func (g *Generator) place(rng *rand.Rand, owner uuid.UUID, day time.Time, taken []Candidate) (Candidate, bool) {
	for attempt := 0; attempt < g.Attempts; attempt++ {
		durHours := 1 + rng.Intn(2)
		lastStart := g.DayEndHour - durHours
		hour := g.DayStartHour + rng.Intn(lastStart-g.DayStartHour+1)
		start := day.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Duration(durHours) * time.Hour)
		if overlapsAny(start, end, taken) {
			continue
		}
		return Candidate{
			OwnerID: owner,
			Title:   g.Titles[rng.Intn(len(g.Titles))],
			StartAt: start,
			EndAt:   end,
		}, true
	}
	return Candidate{}, false
}

// sampleCount draws from countWeights, clamped to max.
func sampleCount(rng *rand.Rand, max int) int {
	total := 0
	for _, w := range countWeights {
		total += w
	}
	roll := rng.Intn(total)
	for n, w := range countWeights {
		if roll < w {
			if n > max {
				return max
			}
			return n
		}
		roll -= w
	}
	return 0
}

// overlapsAny applies the half-open interval test: two intervals overlap
// unless one ends at or before the other starts.
func overlapsAny(start, end time.Time, taken []Candidate) bool {
	for _, t := range taken {
		if start.Before(t.EndAt) && t.StartAt.Before(end) {
			return true
		}
	}
	return false
}
