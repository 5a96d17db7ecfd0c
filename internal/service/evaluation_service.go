package service

import (
	"errors"
	"fmt"

	"readquest/internal/database"
	"readquest/internal/models"
	"readquest/internal/repository"
	"readquest/internal/validation"
)

var ErrNoAnswers = errors.New("submission contains no answers")

// EvaluationService serves comprehension quizzes and scores submissions
type EvaluationService struct {
	db          *database.DB
	evaluations *repository.EvaluationRepository
	stats       *repository.StatsRepository
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(db *database.DB, evaluations *repository.EvaluationRepository, stats *repository.StatsRepository) *EvaluationService {
	return &EvaluationService{db: db, evaluations: evaluations, stats: stats}
}

// ListChapters returns a book's chapters in reading order
func (s *EvaluationService) ListChapters(bookID int64) ([]models.Chapter, error) {
	chapters, err := s.evaluations.ListChaptersByBook(bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	return chapters, nil
}

// ListQuestions returns a chapter's questions with their options. Correct
// answers are stripped during serialization, not here.
func (s *EvaluationService) ListQuestions(chapterID int64) ([]models.Question, error) {
	questions, err := s.evaluations.ListQuestionsByChapter(chapterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

// Submit scores an evaluation: every answer is checked against the stored
// correct option, the evaluation header and answers are written in one
// transaction, and the score folds into the account's aggregate statistics.
// Score is the percentage of correct answers, rounded down.
func (s *EvaluationService) Submit(userID, profileID, bookID int64, answers []models.SubmittedAnswer) (*models.EvaluationResult, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	evaluations := s.evaluations.WithTx(tx)

	evaluationID, err := evaluations.InsertEvaluation(bookID, profileID, len(answers))
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, a := range answers {
		isCorrect, err := evaluations.IsCorrectOption(a.OptionID, a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("failed to check answer: %w", err)
		}
		if isCorrect {
			correct++
		}
		if err := evaluations.InsertAnswer(evaluationID, a.QuestionID, a.OptionID, isCorrect); err != nil {
			return nil, fmt.Errorf("failed to record answer: %w", err)
		}
	}

	score := correct * 100 / len(answers)
	if err := evaluations.UpdateScore(evaluationID, score, correct); err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}

	if err := s.stats.WithTx(tx).ApplyEvaluation(userID, score); err != nil {
		return nil, fmt.Errorf("failed to update statistics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit evaluation: %w", err)
	}

	return &models.EvaluationResult{
		EvaluationID: evaluationID,
		Total:        len(answers),
		Correct:      correct,
		Score:        score,
	}, nil
}

// ChapterInput is one ingested chapter with its generated questions
type ChapterInput struct {
	BookID    int64           `json:"book_id"`
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	Questions []QuestionInput `json:"questions"`
}

// QuestionInput is one ingested question with its answer options
type QuestionInput struct {
	ComprehensionLevel string        `json:"comprehension_level"`
	Prompt             string        `json:"prompt"`
	Options            []OptionInput `json:"options"`
}

// OptionInput is one ingested answer option
type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// IngestChapter stores a chapter and its questions pushed by the external
// content worker, all in one transaction
func (s *EvaluationService) IngestChapter(input ChapterInput) (int64, error) {
	if err := validation.ValidateTitle(input.Title); err != nil {
		return 0, err
	}
	if input.BookID <= 0 {
		return 0, validation.ValidationError{Field: "book_id", Message: "must be a positive integer"}
	}
	for _, q := range input.Questions {
		if len(q.Options) == 0 {
			return 0, validation.ValidationError{Field: "options", Message: "every question needs at least one option"}
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	evaluations := s.evaluations.WithTx(tx)

	chapterID, err := evaluations.CreateChapter(input.BookID, input.Number, input.Title)
	if err != nil {
		return 0, fmt.Errorf("failed to create chapter: %w", err)
	}

	for _, q := range input.Questions {
		options := make([]models.QuestionOption, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, models.QuestionOption{OptionText: o.Text, IsCorrect: o.IsCorrect})
		}
		if _, err := evaluations.CreateQuestion(chapterID, q.ComprehensionLevel, q.Prompt, options); err != nil {
			return 0, fmt.Errorf("failed to create question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit chapter: %w", err)
	}
	return chapterID, nil
}
