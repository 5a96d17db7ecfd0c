package repository

import (
	"database/sql"

	"readquest/internal/database"
	"readquest/internal/models"
)

// StatsRepository handles aggregate user statistics and serves as the
// metrics collector for the mission progress engine
type StatsRepository struct {
	db database.DBTX
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db database.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *StatsRepository) WithTx(tx *database.Tx) *StatsRepository {
	return &StatsRepository{db: tx}
}

// CreateEmpty inserts the zeroed statistics row created at registration
func (r *StatsRepository) CreateEmpty(userID int64) error {
	_, err := r.db.ExecInsertIgnore(
		"INSERT INTO user_stats (user_id, reading_speed, books_read, tests_completed, accuracy_pct) VALUES (?, 0, 0, 0, 0)",
		userID,
	)
	return err
}

// GetByUserID returns the statistics row, nil when absent
func (r *StatsRepository) GetByUserID(userID int64) (*models.UserStats, error) {
	query := `
		SELECT id, user_id, reading_speed, books_read, tests_completed, accuracy_pct
		FROM user_stats
		WHERE user_id = ?
	`
	s := &models.UserStats{}
	err := r.db.QueryRow(query, userID).Scan(
		&s.ID, &s.UserID, &s.ReadingSpeed, &s.BooksRead, &s.TestsCompleted, &s.AccuracyPct,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyEvaluation folds one evaluation score (0-100) into the aggregate
// counters. The running accuracy is recomputed from the previous mean.
func (r *StatsRepository) ApplyEvaluation(userID int64, score int) error {
	query := `
		UPDATE user_stats
		SET accuracy_pct = (accuracy_pct * tests_completed + ?) / (tests_completed + 1),
		    tests_completed = tests_completed + 1
		WHERE user_id = ?
	`
	_, err := r.db.Exec(query, score, userID)
	return err
}

// IncrementBooksRead bumps the finished-books counter
func (r *StatsRepository) IncrementBooksRead(userID int64) error {
	_, err := r.db.Exec("UPDATE user_stats SET books_read = books_read + 1 WHERE user_id = ?", userID)
	return err
}

// CountCompletedEvaluations returns how many evaluations the profile has
// submitted, used as the tests-completed metric for mission progress
func (r *StatsRepository) CountCompletedEvaluations(profileID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM evaluations WHERE profile_id = ?", profileID).Scan(&count)
	return count, err
}

// MaxPagesRead returns the highest pages-read value across the profile's
// library, used as the pages-read metric for mission progress
func (r *StatsRepository) MaxPagesRead(profileID int64) (int, error) {
	var max int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(pages_read), 0) FROM reading_progress WHERE profile_id = ?",
		profileID,
	).Scan(&max)
	return max, err
}
