package models

import "time"

// Book is a catalog entry
type Book struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Author           string    `json:"author"`
	Description      string    `json:"description"`
	CategoryID       int64     `json:"category_id"`
	CategoryName     string    `json:"category,omitempty"`
	EducationLevelID int64     `json:"education_level_id"`
	FileURL          string    `json:"file_url"`
	CoverURL         string    `json:"cover_url"`
	TotalPages       int       `json:"total_pages"`
	TotalChapters    int       `json:"total_chapters"`
	CreatedAt        time.Time `json:"created_at"`
}

// Category groups books in the catalog
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EducationLevel tags books and profiles with a school level
type EducationLevel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Chapter is one readable unit of a book. Content ingestion (PDF splitting,
// question generation) happens in an external worker; this backend only
// stores the results.
type Chapter struct {
	ID     int64  `json:"id"`
	BookID int64  `json:"book_id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Question is a multiple-choice comprehension question for a chapter
type Question struct {
	ID                 int64            `json:"id"`
	ChapterID          int64            `json:"chapter_id"`
	ComprehensionLevel string           `json:"comprehension_level"`
	Prompt             string           `json:"prompt"`
	Options            []QuestionOption `json:"options"`
}

// QuestionOption is one selectable answer. IsCorrect is never serialized to
// clients; scoring happens server side.
type QuestionOption struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"-"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"-"`
}

// Favorite marks a book in a profile's favorites list
type Favorite struct {
	ProfileID int64
	BookID    int64
	CreatedAt time.Time
}
