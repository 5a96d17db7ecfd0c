package repository

import (
	"readquest/internal/database"
)

// FavoriteRepository handles favorite-book database operations
type FavoriteRepository struct {
	db database.DBTX
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db database.DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List returns the profile's favorite book IDs
func (r *FavoriteRepository) List(profileID int64) ([]int64, error) {
	rows, err := r.db.Query(
		"SELECT book_id FROM favorites WHERE profile_id = ? ORDER BY created_at DESC",
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		bookIDs = append(bookIDs, id)
	}
	return bookIDs, rows.Err()
}

// Add marks a book as favorite. The (profile_id, book_id) uniqueness
// constraint makes a repeat add a no-op rather than a duplicate row.
func (r *FavoriteRepository) Add(profileID, bookID int64) error {
	_, err := r.db.ExecInsertIgnore(
		"INSERT INTO favorites (profile_id, book_id) VALUES (?, ?)",
		profileID, bookID,
	)
	return err
}

// Remove unmarks a favorite; removing an absent favorite is a no-op
func (r *FavoriteRepository) Remove(profileID, bookID int64) error {
	_, err := r.db.Exec(
		"DELETE FROM favorites WHERE profile_id = ? AND book_id = ?",
		profileID, bookID,
	)
	return err
}
