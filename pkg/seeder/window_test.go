package seeder

import (
	"errors"
	"testing"
	"time"
)

func TestWindowForWeek(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
	}{
		{
			name:      "mid week",
			ref:       time.Date(2024, 5, 15, 13, 45, 0, 0, time.UTC), // Wednesday
			wantStart: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "monday maps to itself",
			ref:       time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to the week started the previous monday",
			ref:       time.Date(2024, 5, 19, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "non-utc reference is normalized first",
			ref:       time.Date(2024, 5, 13, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)), // Sunday 22:00 UTC
			wantStart: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := WindowFor(tt.ref, WindowWeek)
			if err != nil {
				t.Fatalf("WindowFor: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", w.Start, tt.wantStart)
			}
			if want := tt.wantStart.AddDate(0, 0, 7); !w.End.Equal(want) {
				t.Errorf("end = %v, want %v", w.End, want)
			}
			if w.Start.Weekday() != time.Monday {
				t.Errorf("start weekday = %v, want Monday", w.Start.Weekday())
			}
		})
	}
}

func TestWindowForMonth(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			ref:       time.Date(2024, 2, 17, 8, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls into january",
			ref:       time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := WindowFor(tt.ref, WindowMonth)
			if err != nil {
				t.Fatalf("WindowFor: %v", err)
			}
			if !w.Start.Equal(tt.wantStart) || !w.End.Equal(tt.wantEnd) {
				t.Errorf("window = [%v, %v), want [%v, %v)", w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestWindowForUnknownKind(t *testing.T) {
	_, err := WindowFor(time.Now(), WindowKind("fortnight"))
	if !errors.Is(err, ErrUnknownWindow) {
		t.Fatalf("err = %v, want ErrUnknownWindow", err)
	}
}
