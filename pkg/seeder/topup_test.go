package seeder

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubDayCounter struct {
	counts map[string]int
	err    error
	calls  int
}

func (s *stubDayCounter) DayCounts(ctx context.Context, owner uuid.UUID, start, end time.Time) (map[string]int, error) {
	s.calls++
	return s.counts, s.err
}

func TestTopUpFillsOnlyTheDeficit(t *testing.T) {
	owner := uuid.New()
	w := testWeek(t)
	monday := w.Start
	tuesday := monday.AddDate(0, 0, 1)
	cands := []Candidate{
		candidateAt(owner, monday, 9, "Gym"),
		candidateAt(owner, monday, 11, "Work"),
		candidateAt(owner, monday, 14, "Class"),
		candidateAt(owner, tuesday, 10, "Lunch"),
		candidateAt(owner, tuesday, 13, "Study"),
	}
	counter := &stubDayCounter{counts: map[string]int{
		dayKey(monday):  2, // deficit 1 under cap 3
		dayKey(tuesday): 0, // deficit 3
	}}
	out, err := TopUp(context.Background(), counter, rand.New(rand.NewSource(6)), owner, w, cands, 3)
	if err != nil {
		t.Fatalf("TopUp: %v", err)
	}
	byDay := groupByDay(out)
	if got := len(byDay[dayKey(monday)]); got != 1 {
		t.Errorf("monday additions = %d, want 1", got)
	}
	if got := len(byDay[dayKey(tuesday)]); got != 2 {
		t.Errorf("tuesday additions = %d, want 2 (all candidates fit)", got)
	}
	for day, list := range byDay {
		if counter.counts[day]+len(list) > 3 {
			t.Errorf("day %s: existing %d + inserted %d exceeds cap 3", day, counter.counts[day], len(list))
		}
	}
}

func TestTopUpAtCapYieldsEmptySet(t *testing.T) {
	owner := uuid.New()
	w := testWeek(t)
	cands := []Candidate{
		candidateAt(owner, w.Start, 9, "Gym"),
		candidateAt(owner, w.Start, 11, "Work"),
	}
	counter := &stubDayCounter{counts: map[string]int{dayKey(w.Start): 3}}
	out, err := TopUp(context.Background(), counter, rand.New(rand.NewSource(7)), owner, w, cands, 3)
	if err != nil {
		t.Fatalf("TopUp: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0 when every day is at cap", len(out))
	}
}

func TestTopUpOverfullDayNeverGoesNegative(t *testing.T) {
	owner := uuid.New()
	w := testWeek(t)
	cands := []Candidate{candidateAt(owner, w.Start, 9, "Gym")}
	counter := &stubDayCounter{counts: map[string]int{dayKey(w.Start): 7}}
	out, err := TopUp(context.Background(), counter, rand.New(rand.NewSource(8)), owner, w, cands, 3)
	if err != nil {
		t.Fatalf("TopUp: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0 for a day already over cap", len(out))
	}
}

func TestTopUpPropagatesStoreError(t *testing.T) {
	owner := uuid.New()
	w := testWeek(t)
	wantErr := errors.New("aggregation failed")
	counter := &stubDayCounter{err: wantErr}
	_, err := TopUp(context.Background(), counter, rand.New(rand.NewSource(9)), owner, w, nil, 3)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
