package service

import (
	"testing"
	"time"

	"readquest/internal/models"
)

type fakeEventLog struct {
	recorded []time.Time
	dates    []time.Time
}

func (f *fakeEventLog) Record(profileID int64, day time.Time) error {
	f.recorded = append(f.recorded, day)
	return nil
}

func (f *fakeEventLog) ListActivityDates(profileID int64) ([]time.Time, error) {
	return f.dates, nil
}

type fakeStatsReader struct {
	stats *models.UserStats
}

func (f *fakeStatsReader) GetByUserID(userID int64) (*models.UserStats, error) {
	return f.stats, nil
}

func TestCurrentStreakUsesCanonicalTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	events := &fakeEventLog{dates: []time.Time{day("2026-03-11")}}
	s := NewStatsService(events, &fakeStatsReader{}, tokyo)
	// 23:00 UTC on March 10 is already March 11 in Tokyo
	s.now = func() time.Time { return time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC) }

	streak, err := s.CurrentStreak(1)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}
}

func TestRecordActivityLogsToday(t *testing.T) {
	events := &fakeEventLog{}
	s := NewStatsService(events, &fakeStatsReader{}, time.UTC)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC) }

	if err := s.RecordActivity(1); err != nil {
		t.Fatal(err)
	}
	if len(events.recorded) != 1 {
		t.Fatalf("expected 1 recorded day, got %d", len(events.recorded))
	}
	y, m, d := events.recorded[0].Date()
	if y != 2026 || m != time.March || d != 10 {
		t.Errorf("recorded day = %v, want 2026-03-10", events.recorded[0])
	}
}

func TestGeneralStatsCombinesCountersAndStreak(t *testing.T) {
	events := &fakeEventLog{dates: []time.Time{day("2026-03-10"), day("2026-03-09")}}
	reader := &fakeStatsReader{stats: &models.UserStats{
		ReadingSpeed:   120.5,
		BooksRead:      3,
		TestsCompleted: 7,
		AccuracyPct:    82.4,
	}}
	s := NewStatsService(events, reader, time.UTC)
	s.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	stats, err := s.GeneralStats(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.BooksRead != 3 || stats.TestsCompleted != 7 {
		t.Errorf("counters = %d/%d, want 3/7", stats.BooksRead, stats.TestsCompleted)
	}
	if stats.StreakDays != 2 {
		t.Errorf("streak = %d, want 2", stats.StreakDays)
	}
}

func TestGeneralStatsWithMissingRow(t *testing.T) {
	s := NewStatsService(&fakeEventLog{}, &fakeStatsReader{stats: nil}, time.UTC)

	stats, err := s.GeneralStats(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.BooksRead != 0 || stats.StreakDays != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}
