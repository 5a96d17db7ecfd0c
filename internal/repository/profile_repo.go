package repository

import (
	"database/sql"
	"fmt"
	"time"

	"readquest/internal/database"
	"readquest/internal/models"
)

// ProfileRepository handles reading-profile database operations
type ProfileRepository struct {
	db database.DBTX
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *ProfileRepository) WithTx(tx *database.Tx) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

// CreateProfile creates a reading profile for a user
func (r *ProfileRepository) CreateProfile(userID int64, name string, age int, educationLevelID int64) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, name, age, education_level_id, last_session_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP);
	`
	id, err := r.db.ExecReturningID(query, userID, name, age, educationLevelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &models.Profile{
		ID:               id,
		UserID:           userID,
		Name:             name,
		Age:              age,
		EducationLevelID: educationLevelID,
		CreatedAt:        time.Now(),
		LastSessionAt:    time.Now(),
	}, nil
}

// GetProfileByID retrieves a profile by ID, nil when absent
func (r *ProfileRepository) GetProfileByID(profileID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, name, age, education_level_id, created_at, last_session_at
		FROM profiles
		WHERE id = ?
	`
	return r.scanProfile(r.db.QueryRow(query, profileID))
}

// GetFirstProfileByUserID returns the user's oldest profile, nil when the
// user has none
func (r *ProfileRepository) GetFirstProfileByUserID(userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, name, age, education_level_id, created_at, last_session_at
		FROM profiles
		WHERE user_id = ?
		ORDER BY id ASC
		LIMIT 1
	`
	return r.scanProfile(r.db.QueryRow(query, userID))
}

// ListProfilesByUserID returns every profile on the account
func (r *ProfileRepository) ListProfilesByUserID(userID int64) ([]models.Profile, error) {
	query := `
		SELECT id, user_id, name, age, education_level_id, created_at, last_session_at
		FROM profiles
		WHERE user_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.EducationLevelID, &p.CreatedAt, &p.LastSessionAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// TouchLastSession records profile activity at login
func (r *ProfileRepository) TouchLastSession(profileID int64) error {
	_, err := r.db.Exec("UPDATE profiles SET last_session_at = CURRENT_TIMESTAMP WHERE id = ?", profileID)
	return err
}

// GetProfileData returns the combined profile/account/statistics view.
// Streak days are filled in by the caller.
func (r *ProfileRepository) GetProfileData(profileID int64) (*models.ProfileData, error) {
	query := `
		SELECT
			u.username,
			p.name,
			p.age,
			p.created_at,
			COALESCE(el.name, ''),
			COALESCE(s.reading_speed, 0),
			COALESCE(s.books_read, 0),
			COALESCE(s.tests_completed, 0),
			COALESCE(s.accuracy_pct, 0)
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN education_levels el ON el.id = p.education_level_id
		LEFT JOIN user_stats s ON s.user_id = u.id
		WHERE p.id = ?
	`

	data := &models.ProfileData{}
	var createdAt time.Time
	err := r.db.QueryRow(query, profileID).Scan(
		&data.Username,
		&data.ProfileName,
		&data.Age,
		&createdAt,
		&data.EducationLevel,
		&data.ReadingSpeed,
		&data.BooksRead,
		&data.TestsCompleted,
		&data.AccuracyPct,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	data.MemberSince = createdAt.Format("2006-01-02")
	return data, nil
}

func (r *ProfileRepository) scanProfile(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.EducationLevelID, &p.CreatedAt, &p.LastSessionAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
