package repository

import (
	"database/sql"
	"fmt"
	"time"

	"readquest/internal/database"
	"readquest/internal/models"
)

// BookRepository handles catalog database operations
type BookRepository struct {
	db database.DBTX
}

// NewBookRepository creates a new book repository
func NewBookRepository(db database.DBTX) *BookRepository {
	return &BookRepository{db: db}
}

// Search finds catalog books matching a free-text query (title, author or
// category name) and/or a category filter. Both filters are optional.
func (r *BookRepository) Search(query string, categoryID int64) ([]models.Book, error) {
	sqlQuery := `
		SELECT b.id, b.title, b.author, b.description, b.category_id, c.name,
		       b.education_level_id, b.file_url, b.cover_url,
		       b.total_pages, b.total_chapters, b.created_at
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE 1=1
	`
	var args []interface{}

	if query != "" {
		like := "%" + query + "%"
		sqlQuery += " AND (LOWER(b.title) LIKE LOWER(?) OR LOWER(b.author) LIKE LOWER(?) OR LOWER(c.name) LIKE LOWER(?))"
		args = append(args, like, like, like)
	}
	if categoryID > 0 {
		sqlQuery += " AND b.category_id = ?"
		args = append(args, categoryID)
	}
	sqlQuery += " ORDER BY b.title ASC"

	rows, err := r.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.Description, &b.CategoryID, &b.CategoryName,
			&b.EducationLevelID, &b.FileURL, &b.CoverURL,
			&b.TotalPages, &b.TotalChapters, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// GetByID retrieves a book, nil when absent
func (r *BookRepository) GetByID(bookID int64) (*models.Book, error) {
	query := `
		SELECT b.id, b.title, b.author, b.description, b.category_id, c.name,
		       b.education_level_id, b.file_url, b.cover_url,
		       b.total_pages, b.total_chapters, b.created_at
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = ?
	`
	b := &models.Book{}
	err := r.db.QueryRow(query, bookID).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.CategoryID, &b.CategoryName,
		&b.EducationLevelID, &b.FileURL, &b.CoverURL,
		&b.TotalPages, &b.TotalChapters, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a catalog book
func (r *BookRepository) Create(b *models.Book) (int64, error) {
	query := `
		INSERT INTO books (title, author, description, category_id, education_level_id,
		                   file_url, cover_url, total_pages, total_chapters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	id, err := r.db.ExecReturningID(query,
		b.Title, b.Author, b.Description, b.CategoryID, b.EducationLevelID,
		b.FileURL, b.CoverURL, b.TotalPages, b.TotalChapters,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create book: %w", err)
	}
	b.ID = id
	b.CreatedAt = time.Now()
	return id, nil
}

// ListCategories returns all categories ordered by name
func (r *BookRepository) ListCategories() ([]models.Category, error) {
	rows, err := r.db.Query("SELECT id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a category; ErrDuplicate when the name is taken
func (r *BookRepository) CreateCategory(name string) (*models.Category, error) {
	affected, err := r.db.ExecInsertIgnore("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrDuplicate
	}

	c := &models.Category{}
	if err := r.db.QueryRow("SELECT id, name FROM categories WHERE name = ?", name).Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return c, nil
}

// ListEducationLevels returns all education levels ordered by name
func (r *BookRepository) ListEducationLevels() ([]models.EducationLevel, error) {
	rows, err := r.db.Query("SELECT id, name FROM education_levels ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []models.EducationLevel
	for rows.Next() {
		var l models.EducationLevel
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
