package service

import (
	"errors"
	"fmt"

	"readquest/internal/models"
	"readquest/internal/repository"
	"readquest/internal/validation"
)

var (
	ErrAlreadyInLibrary = errors.New("book already in library")
	ErrNotInLibrary     = errors.New("book not in library")
)

// ProgressUpdate carries new reading progress for a library book
type ProgressUpdate struct {
	PagesRead         int    `json:"pages_read"`
	ChaptersCompleted int    `json:"chapters_completed"`
	Status            string `json:"status"`
}

// LibraryService manages a profile's personal library: which books it is
// reading, how far along, and its favorites.
type LibraryService struct {
	progress  *repository.ProgressRepository
	favorites *repository.FavoriteRepository
	books     *repository.BookRepository
	stats     *repository.StatsRepository
}

// NewLibraryService creates a new library service
func NewLibraryService(progress *repository.ProgressRepository, favorites *repository.FavoriteRepository, books *repository.BookRepository, stats *repository.StatsRepository) *LibraryService {
	return &LibraryService{progress: progress, favorites: favorites, books: books, stats: stats}
}

// List returns the profile's library with book details
func (s *LibraryService) List(profileID int64) ([]models.LibraryEntry, error) {
	entries, err := s.progress.ListByProfile(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	if entries == nil {
		entries = []models.LibraryEntry{}
	}
	return entries, nil
}

// AddBook puts a catalog book into the profile's library
func (s *LibraryService) AddBook(profileID, bookID int64) error {
	book, err := s.books.GetByID(bookID)
	if err != nil {
		return fmt.Errorf("failed to look up book: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}

	err = s.progress.Add(profileID, bookID)
	if err == repository.ErrDuplicate {
		return ErrAlreadyInLibrary
	}
	return err
}

// UpdateProgress writes new progress for a library book. When the update
// moves the book to completed for the first time, the account's books-read
// counter is incremented.
func (s *LibraryService) UpdateProgress(userID, profileID, bookID int64, update ProgressUpdate) error {
	switch update.Status {
	case models.ReadingStatusStarted, models.ReadingStatusReading, models.ReadingStatusCompleted:
	default:
		return validation.ValidationError{Field: "status", Message: "unknown reading status"}
	}
	if update.PagesRead < 0 || update.ChaptersCompleted < 0 {
		return validation.ValidationError{Field: "pages_read", Message: "progress values must not be negative"}
	}

	current, err := s.progress.Get(profileID, bookID)
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}
	if current == nil {
		return ErrNotInLibrary
	}

	err = s.progress.Update(profileID, bookID, update.PagesRead, update.ChaptersCompleted, update.Status)
	if err == repository.ErrNotFound {
		return ErrNotInLibrary
	}
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	if update.Status == models.ReadingStatusCompleted && current.Status != models.ReadingStatusCompleted {
		if err := s.stats.IncrementBooksRead(userID); err != nil {
			return fmt.Errorf("failed to update books read: %w", err)
		}
	}
	return nil
}

// ListFavorites returns the profile's favorite book IDs
func (s *LibraryService) ListFavorites(profileID int64) ([]int64, error) {
	ids, err := s.favorites.List(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// AddFavorite marks a book as favorite; repeat adds are no-ops
func (s *LibraryService) AddFavorite(profileID, bookID int64) error {
	book, err := s.books.GetByID(bookID)
	if err != nil {
		return fmt.Errorf("failed to look up book: %w", err)
	}
	if book == nil {
		return ErrBookNotFound
	}
	return s.favorites.Add(profileID, bookID)
}

// RemoveFavorite unmarks a favorite
func (s *LibraryService) RemoveFavorite(profileID, bookID int64) error {
	return s.favorites.Remove(profileID, bookID)
}
