package service

import (
	"sort"
	"time"
)

// CurrentStreak computes the length of the consecutive-day run of activity
// ending exactly today. A profile that was not active today has a streak of
// 0, even if a long run ended yesterday; the display value is zeroed the
// moment a day is missed.
//
// The input may arrive in any order and may contain duplicate days; both
// are handled here rather than trusted upstream. Time-of-day components are
// ignored, only the calendar day in each value's own location counts, so
// callers must normalize dates into the canonical app timezone first.
func CurrentStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[int64]bool, len(dates))
	days := make([]int64, 0, len(dates))
	for _, d := range dates {
		day := epochDay(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	if days[0] != epochDay(today) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i] != days[i-1]-1 {
			break
		}
		streak++
	}
	return streak
}

// epochDay maps a timestamp to its calendar day as a day count, using the
// civil date in the value's location so DST shifts cannot split or merge
// days
func epochDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
