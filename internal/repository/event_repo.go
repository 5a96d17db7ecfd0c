package repository

import (
	"time"

	"readquest/internal/database"
)

// dateLayout is the calendar-day key stored for reading events. Dates are
// stored as plain strings so no dialect or session timezone can shift them.
const dateLayout = "2006-01-02"

// EventRepository is the append-only log of qualifying reading activity
type EventRepository struct {
	db database.DBTX
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// Record logs a qualifying activity for the profile on the given calendar
// day. The uniqueness constraint on (profile_id, activity_date) keeps one
// row per day no matter how many activities happen.
func (r *EventRepository) Record(profileID int64, day time.Time) error {
	_, err := r.db.ExecInsertIgnore(
		"INSERT INTO reading_events (profile_id, activity_date) VALUES (?, ?)",
		profileID, day.Format(dateLayout),
	)
	return err
}

// ListActivityDates returns the profile's distinct activity days, most
// recent first
func (r *EventRepository) ListActivityDates(profileID int64) ([]time.Time, error) {
	rows, err := r.db.Query(
		"SELECT DISTINCT activity_date FROM reading_events WHERE profile_id = ? ORDER BY activity_date DESC",
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			// Skip malformed rows rather than failing the streak read
			continue
		}
		dates = append(dates, day)
	}
	return dates, rows.Err()
}
