package service

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCurrentStreak(t *testing.T) {
	today := day("2026-03-10")

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{
			name:  "no activity",
			dates: nil,
			want:  0,
		},
		{
			name:  "single day today",
			dates: []time.Time{day("2026-03-10")},
			want:  1,
		},
		{
			name:  "three consecutive days ending today",
			dates: []time.Time{day("2026-03-10"), day("2026-03-09"), day("2026-03-08")},
			want:  3,
		},
		{
			name:  "streak broken by gap",
			dates: []time.Time{day("2026-03-10"), day("2026-03-09"), day("2026-03-07")},
			want:  2,
		},
		{
			name:  "run ended yesterday counts as zero",
			dates: []time.Time{day("2026-03-09"), day("2026-03-08"), day("2026-03-07")},
			want:  0,
		},
		{
			name:  "unsorted input",
			dates: []time.Time{day("2026-03-08"), day("2026-03-10"), day("2026-03-09")},
			want:  3,
		},
		{
			name:  "duplicate days collapse",
			dates: []time.Time{day("2026-03-10"), day("2026-03-10"), day("2026-03-09")},
			want:  2,
		},
		{
			name:  "old activity only",
			dates: []time.Time{day("2025-12-01")},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentStreak(tt.dates, today)
			if got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreakIgnoresTimeOfDay(t *testing.T) {
	dates := []time.Time{
		time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 0, 1, 0, 0, time.UTC),
	}
	today := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

	if got := CurrentStreak(dates, today); got != 2 {
		t.Errorf("CurrentStreak() = %d, want 2", got)
	}
}
