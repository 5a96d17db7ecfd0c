package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"readquest/internal/models"
	"readquest/internal/repository"
	"readquest/internal/storage"
	"readquest/internal/validation"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrStorageUnavailable = errors.New("file storage is not available")
)

// BookUpload carries a new catalog book with its file attachments
type BookUpload struct {
	Title            string
	Author           string
	Description      string
	CategoryID       int64
	EducationLevelID int64
	TotalPages       int
	TotalChapters    int

	File      io.Reader
	FileName  string
	FileType  string
	Cover     io.Reader
	CoverName string
	CoverType string
}

// CatalogService handles catalog reads and admin book uploads
type CatalogService struct {
	books *repository.BookRepository
	store storage.ObjectStorage
}

// NewCatalogService creates a new catalog service
func NewCatalogService(books *repository.BookRepository, store storage.ObjectStorage) *CatalogService {
	return &CatalogService{books: books, store: store}
}

// Search finds catalog books by free-text query and/or category
func (s *CatalogService) Search(query string, categoryID int64) ([]models.Book, error) {
	books, err := s.books.Search(strings.TrimSpace(query), categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

// GetBook retrieves one catalog book
func (s *CatalogService) GetBook(bookID int64) (*models.Book, error) {
	book, err := s.books.GetByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// ListCategories returns all catalog categories
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.books.ListCategories()
}

// CreateCategory adds a catalog category
func (s *CatalogService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation.ValidationError{Field: "name", Message: "name is required"}
	}
	category, err := s.books.CreateCategory(name)
	if err == repository.ErrDuplicate {
		return nil, ErrCategoryExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// ListEducationLevels returns all education levels
func (s *CatalogService) ListEducationLevels() ([]models.EducationLevel, error) {
	return s.books.ListEducationLevels()
}

// UploadBook stores the book file and cover image in object storage and
// creates the catalog row. Uploaded objects are removed again when a later
// step fails, so a failed upload leaves no orphans in the bucket.
func (s *CatalogService) UploadBook(ctx context.Context, upload BookUpload) (*models.Book, error) {
	if err := validation.ValidateTitle(upload.Title); err != nil {
		return nil, err
	}
	if upload.File == nil {
		return nil, validation.ValidationError{Field: "file", Message: "book file is required"}
	}

	prefix := uuid.New().String()
	fileKey := "books/" + prefix + path.Ext(upload.FileName)

	fileURL, err := s.store.Upload(ctx, fileKey, upload.FileType, upload.File)
	if err == storage.ErrDisabled {
		return nil, ErrStorageUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upload book file: %w", err)
	}
	uploaded := []string{fileKey}

	var coverURL string
	if upload.Cover != nil {
		coverKey := "covers/" + prefix + path.Ext(upload.CoverName)
		coverURL, err = s.store.Upload(ctx, coverKey, upload.CoverType, upload.Cover)
		if err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload cover: %w", err)
		}
		uploaded = append(uploaded, coverKey)
	}

	book := &models.Book{
		Title:            strings.TrimSpace(upload.Title),
		Author:           strings.TrimSpace(upload.Author),
		Description:      upload.Description,
		CategoryID:       upload.CategoryID,
		EducationLevelID: upload.EducationLevelID,
		FileURL:          fileURL,
		CoverURL:         coverURL,
		TotalPages:       upload.TotalPages,
		TotalChapters:    upload.TotalChapters,
	}
	if _, err := s.books.Create(book); err != nil {
		s.cleanup(ctx, uploaded)
		return nil, err
	}
	return book, nil
}

func (s *CatalogService) cleanup(ctx context.Context, keys []string) {
	if err := s.store.Remove(ctx, keys...); err != nil {
		log.Printf("failed to clean up uploaded objects %v: %v", keys, err)
	}
}
