package seeder

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// DayCounter is the grouped-aggregation capability the top-up planner
// consumes: a day-key -> count map of events starting in [start, end).
type DayCounter interface {
	DayCounts(ctx context.Context, owner uuid.UUID, start, end time.Time) (map[string]int, error)
}

// TopUp reduces each day's candidate list to the deficit left under the
// cap by events already persisted in the window. Strictly additive: it
// reads only the grouped counts and never touches persisted rows. An empty
// result means every day is already at the cap.
func TopUp(ctx context.Context, counts DayCounter, rng *rand.Rand, owner uuid.UUID, w Window, cands []Candidate, perDayMax int) ([]Candidate, error) {
	existing, err := counts.DayCounts(ctx, owner, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	final := make([]Candidate, 0, len(cands))
	for key, list := range groupByDay(cands) {
		need := perDayMax - existing[key]
		if need <= 0 {
			continue
		}
		rng.Shuffle(len(list), func(i, j int) {
			list[i], list[j] = list[j], list[i]
		})
		if len(list) > need {
			list = list[:need]
		}
		final = append(final, list...)
	}
	return final, nil
}
