package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"readquest/internal/database"
	"readquest/internal/models"
	"readquest/internal/repository"
)

// CatalogBackup is the portable catalog snapshot written by the backup tool
type CatalogBackup struct {
	ExportedAt      time.Time               `json:"exported_at"`
	Categories      []models.Category       `json:"categories"`
	EducationLevels []models.EducationLevel `json:"education_levels"`
	Books           []BackupBook            `json:"books"`
}

// BackupBook is a catalog book with its chapters and questions inlined
type BackupBook struct {
	models.Book
	Category       string          `json:"category_name"`
	EducationLevel int64           `json:"education_level"`
	Chapters       []BackupChapter `json:"chapters"`
}

// BackupChapter is a chapter with its questions inlined
type BackupChapter struct {
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	Questions []QuestionInput `json:"questions"`
}

// BackupService exports the catalog (categories, levels, books, chapters,
// questions) to JSON and restores it into another database. User accounts
// and their activity are deliberately not part of the snapshot.
type BackupService struct {
	db          *database.DB
	books       *repository.BookRepository
	evaluations *repository.EvaluationRepository
}

// NewBackupService creates a backup service
func NewBackupService(db *database.DB, books *repository.BookRepository, evaluations *repository.EvaluationRepository) *BackupService {
	return &BackupService{db: db, books: books, evaluations: evaluations}
}

// Export writes the catalog snapshot to path
func (s *BackupService) Export(path string) error {
	backup := CatalogBackup{ExportedAt: time.Now()}

	categories, err := s.books.ListCategories()
	if err != nil {
		return fmt.Errorf("failed to export categories: %w", err)
	}
	backup.Categories = categories

	levels, err := s.books.ListEducationLevels()
	if err != nil {
		return fmt.Errorf("failed to export education levels: %w", err)
	}
	backup.EducationLevels = levels

	books, err := s.books.Search("", 0)
	if err != nil {
		return fmt.Errorf("failed to export books: %w", err)
	}

	for _, book := range books {
		entry := BackupBook{Book: book, Category: book.CategoryName, EducationLevel: book.EducationLevelID}

		chapters, err := s.evaluations.ListChaptersByBook(book.ID)
		if err != nil {
			return fmt.Errorf("failed to export chapters for book %d: %w", book.ID, err)
		}
		for _, chapter := range chapters {
			bc := BackupChapter{Number: chapter.Number, Title: chapter.Title}

			questions, err := s.evaluations.ListQuestionsByChapter(chapter.ID)
			if err != nil {
				return fmt.Errorf("failed to export questions for chapter %d: %w", chapter.ID, err)
			}
			for _, q := range questions {
				qi := QuestionInput{ComprehensionLevel: q.ComprehensionLevel, Prompt: q.Prompt}
				for _, o := range q.Options {
					qi.Options = append(qi.Options, OptionInput{Text: o.OptionText, IsCorrect: o.IsCorrect})
				}
				bc.Questions = append(bc.Questions, qi)
			}
			entry.Chapters = append(entry.Chapters, bc)
		}
		backup.Books = append(backup.Books, entry)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// Import restores a catalog snapshot. Categories and levels are matched by
// name; books, chapters and questions are inserted fresh, all in one
// transaction.
func (s *BackupService) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup CatalogBackup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	books := repository.NewBookRepository(tx)
	evaluations := s.evaluations.WithTx(tx)

	categoryIDs := map[string]int64{}
	for _, c := range backup.Categories {
		created, err := books.CreateCategory(c.Name)
		if err == repository.ErrDuplicate {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to import category %q: %w", c.Name, err)
		}
		categoryIDs[c.Name] = created.ID
	}
	existing, err := books.ListCategories()
	if err != nil {
		return err
	}
	for _, c := range existing {
		categoryIDs[c.Name] = c.ID
	}

	for _, entry := range backup.Books {
		book := entry.Book
		book.ID = 0
		if id, ok := categoryIDs[entry.Category]; ok {
			book.CategoryID = id
		}
		bookID, err := books.Create(&book)
		if err != nil {
			return fmt.Errorf("failed to import book %q: %w", book.Title, err)
		}

		for _, chapter := range entry.Chapters {
			chapterID, err := evaluations.CreateChapter(bookID, chapter.Number, chapter.Title)
			if err != nil {
				return fmt.Errorf("failed to import chapter %q: %w", chapter.Title, err)
			}
			for _, q := range chapter.Questions {
				options := make([]models.QuestionOption, 0, len(q.Options))
				for _, o := range q.Options {
					options = append(options, models.QuestionOption{OptionText: o.Text, IsCorrect: o.IsCorrect})
				}
				if _, err := evaluations.CreateQuestion(chapterID, q.ComprehensionLevel, q.Prompt, options); err != nil {
					return fmt.Errorf("failed to import question: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}
