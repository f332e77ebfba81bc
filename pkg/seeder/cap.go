package seeder

import "math/rand"

// EnforceDailyCap groups candidates by UTC day and truncates each group to
// perDayMax. Groups are shuffled before truncation so the discard is not
// biased toward generation order.
func EnforceDailyCap(rng *rand.Rand, cands []Candidate, perDayMax int) []Candidate {
	byDay := groupByDay(cands)
	capped := make([]Candidate, 0, len(cands))
	for _, list := range byDay {
		rng.Shuffle(len(list), func(i, j int) {
			list[i], list[j] = list[j], list[i]
		})
		if len(list) > perDayMax {
			list = list[:perDayMax]
		}
		capped = append(capped, list...)
	}
	return capped
}

func groupByDay(cands []Candidate) map[string][]Candidate {
	byDay := make(map[string][]Candidate)
	for _, c := range cands {
		k := dayKey(c.StartAt)
		byDay[k] = append(byDay[k], c)
	}
	return byDay
}
