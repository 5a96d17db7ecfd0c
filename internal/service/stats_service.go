package service

import (
	"fmt"
	"time"

	"readquest/internal/models"
)

// EventLog is the append-only record of qualifying activity days,
// implemented by the reading-events repository
type EventLog interface {
	Record(profileID int64, day time.Time) error
	ListActivityDates(profileID int64) ([]time.Time, error)
}

// StatsReader provides the aggregate statistics row for a user
type StatsReader interface {
	GetByUserID(userID int64) (*models.UserStats, error)
}

// GeneralStats is the statistics screen payload
type GeneralStats struct {
	ReadingSpeed   float64 `json:"reading_speed"`
	BooksRead      int     `json:"books_read"`
	TestsCompleted int     `json:"tests_completed"`
	AccuracyPct    float64 `json:"accuracy_pct"`
	StreakDays     int     `json:"streak_days"`
}

// StatsService serves streaks and aggregate statistics
type StatsService struct {
	events EventLog
	stats  StatsReader
	loc    *time.Location
	now    func() time.Time
}

// NewStatsService creates a stats service using loc as the canonical
// timezone for calendar-day comparisons
func NewStatsService(events EventLog, stats StatsReader, loc *time.Location) *StatsService {
	return &StatsService{
		events: events,
		stats:  stats,
		loc:    loc,
		now:    time.Now,
	}
}

// CurrentStreak computes the profile's reading streak ending today. Store
// errors on this read path propagate to the caller.
func (s *StatsService) CurrentStreak(profileID int64) (int, error) {
	dates, err := s.events.ListActivityDates(profileID)
	if err != nil {
		return 0, fmt.Errorf("failed to load activity dates: %w", err)
	}
	return CurrentStreak(dates, s.today()), nil
}

// GeneralStats returns the aggregate statistics row combined with the
// live streak
func (s *StatsService) GeneralStats(userID, profileID int64) (*GeneralStats, error) {
	stats, err := s.stats.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	result := &GeneralStats{}
	if stats != nil {
		result.ReadingSpeed = stats.ReadingSpeed
		result.BooksRead = stats.BooksRead
		result.TestsCompleted = stats.TestsCompleted
		result.AccuracyPct = stats.AccuracyPct
	}

	streak, err := s.CurrentStreak(profileID)
	if err != nil {
		return nil, err
	}
	result.StreakDays = streak
	return result, nil
}

// RecordActivity logs a qualifying activity for today. Duplicate activity
// on the same calendar day is absorbed by the store's uniqueness
// constraint.
func (s *StatsService) RecordActivity(profileID int64) error {
	return s.events.Record(profileID, s.today())
}

// today returns the current calendar day in the canonical timezone
func (s *StatsService) today() time.Time {
	return s.now().In(s.loc)
}
