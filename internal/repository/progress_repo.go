package repository

import (
	"database/sql"
	"time"

	"readquest/internal/database"
	"readquest/internal/models"
)

// ProgressRepository handles personal-library database operations
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// ListByProfile returns the profile's library joined with book details
func (r *ProgressRepository) ListByProfile(profileID int64) ([]models.LibraryEntry, error) {
	query := `
		SELECT rp.id, rp.profile_id, rp.book_id, rp.pages_read, rp.chapters_completed,
		       rp.status, rp.started_at, rp.finished_at,
		       b.title, b.cover_url, b.total_pages
		FROM reading_progress rp
		JOIN books b ON b.id = rp.book_id
		WHERE rp.profile_id = ?
		ORDER BY rp.started_at DESC
	`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LibraryEntry
	for rows.Next() {
		var e models.LibraryEntry
		var finishedAt sql.NullTime
		err := rows.Scan(
			&e.ID, &e.ProfileID, &e.BookID, &e.PagesRead, &e.ChaptersCompleted,
			&e.Status, &e.StartedAt, &finishedAt,
			&e.Title, &e.CoverURL, &e.TotalPages,
		)
		if err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			e.FinishedAt = &finishedAt.Time
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the progress row for a (profile, book), nil when absent
func (r *ProgressRepository) Get(profileID, bookID int64) (*models.ReadingProgress, error) {
	query := `
		SELECT id, profile_id, book_id, pages_read, chapters_completed, status, started_at, finished_at
		FROM reading_progress
		WHERE profile_id = ? AND book_id = ?
	`
	p := &models.ReadingProgress{}
	var finishedAt sql.NullTime
	err := r.db.QueryRow(query, profileID, bookID).Scan(
		&p.ID, &p.ProfileID, &p.BookID, &p.PagesRead, &p.ChaptersCompleted,
		&p.Status, &p.StartedAt, &finishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		p.FinishedAt = &finishedAt.Time
	}
	return p, nil
}

// Add puts a book into the profile's library. The uniqueness constraint on
// (profile_id, book_id) makes a repeat add return ErrDuplicate instead of a
// second row.
func (r *ProgressRepository) Add(profileID, bookID int64) error {
	query := `
		INSERT INTO reading_progress (profile_id, book_id, status, pages_read, chapters_completed)
		VALUES (?, ?, ?, 0, 0)
	`
	affected, err := r.db.ExecInsertIgnore(query, profileID, bookID, models.ReadingStatusStarted)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicate
	}
	return nil
}

// Update writes new progress values; ErrNotFound when the book is not in
// the library. FinishedAt is set once the status reaches completed.
func (r *ProgressRepository) Update(profileID, bookID int64, pagesRead, chaptersCompleted int, status string) error {
	var finishedAt interface{}
	if status == models.ReadingStatusCompleted {
		finishedAt = time.Now()
	}

	query := `
		UPDATE reading_progress
		SET pages_read = ?, chapters_completed = ?, status = ?, finished_at = ?
		WHERE profile_id = ? AND book_id = ?
	`
	result, err := r.db.Exec(query, pagesRead, chaptersCompleted, status, finishedAt, profileID, bookID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
