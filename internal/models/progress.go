package models

import "time"

// Reading status values for a book in a profile's library
const (
	ReadingStatusStarted   = "started"
	ReadingStatusReading   = "reading"
	ReadingStatusCompleted = "completed"
)

// ReadingProgress tracks one (profile, book) pair in the personal library
type ReadingProgress struct {
	ID                int64      `json:"id"`
	ProfileID         int64      `json:"profile_id"`
	BookID            int64      `json:"book_id"`
	PagesRead         int        `json:"pages_read"`
	ChaptersCompleted int        `json:"chapters_completed"`
	Status            string     `json:"status"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty"`
}

// LibraryEntry joins reading progress with its book for the library screen
type LibraryEntry struct {
	ReadingProgress
	Title      string `json:"title"`
	CoverURL   string `json:"cover_url"`
	TotalPages int    `json:"total_pages"`
}

// ReadingEvent records one qualifying activity per (profile, calendar day).
// Rows are append-only; duplicates on the same day are rejected by a
// uniqueness constraint. The streak computation reads these.
type ReadingEvent struct {
	ID           int64
	ProfileID    int64
	ActivityDate time.Time
}
