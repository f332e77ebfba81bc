package seeder

import (
	"errors"
	"time"
)

// WindowKind selects the seeding range relative to a reference instant.
type WindowKind string

const (
	WindowWeek  WindowKind = "week"
	WindowMonth WindowKind = "month"
)

var ErrUnknownWindow = errors.New("unknown window kind")

// Window is a half-open UTC range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor computes the canonical UTC window containing ref. Weeks start
// on Monday 00:00:00 UTC and end on the next Monday; months run from the
// first of the month to the first of the next. The caller's zone never
// matters: ref is normalized to UTC first.
func WindowFor(ref time.Time, kind WindowKind) (Window, error) {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	switch kind {
	case WindowWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday -> 0, Sunday -> 6
		start := day.AddDate(0, 0, -offset)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case WindowMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	}
	return Window{}, ErrUnknownWindow
}

// dayKey buckets an instant into its UTC calendar day.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
