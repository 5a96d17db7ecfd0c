package repository

import (
	"database/sql"
	"fmt"

	"readquest/internal/database"
	"readquest/internal/models"
)

// EvaluationRepository handles chapters, questions and evaluation scoring
// database operations
type EvaluationRepository struct {
	db database.DBTX
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db database.DBTX) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *EvaluationRepository) WithTx(tx *database.Tx) *EvaluationRepository {
	return &EvaluationRepository{db: tx}
}

// ListChaptersByBook returns a book's chapters in reading order
func (r *EvaluationRepository) ListChaptersByBook(bookID int64) ([]models.Chapter, error) {
	query := `
		SELECT id, book_id, number, title
		FROM chapters
		WHERE book_id = ?
		ORDER BY number ASC
	`
	rows, err := r.db.Query(query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.BookID, &c.Number, &c.Title); err != nil {
			return nil, err
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// ListQuestionsByChapter returns the chapter's questions with their options
func (r *EvaluationRepository) ListQuestionsByChapter(chapterID int64) ([]models.Question, error) {
	query := `
		SELECT id, chapter_id, comprehension_level, prompt
		FROM questions
		WHERE chapter_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.ComprehensionLevel, &q.Prompt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		options, err := r.listOptions(questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = options
	}
	return questions, nil
}

func (r *EvaluationRepository) listOptions(questionID int64) ([]models.QuestionOption, error) {
	query := `
		SELECT id, question_id, option_text, is_correct
		FROM question_options
		WHERE question_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []models.QuestionOption
	for rows.Next() {
		var o models.QuestionOption
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// IsCorrectOption reports whether the option belongs to the question and is
// marked correct
func (r *EvaluationRepository) IsCorrectOption(optionID, questionID int64) (bool, error) {
	var correct bool
	err := r.db.QueryRow(
		"SELECT is_correct FROM question_options WHERE id = ? AND question_id = ?",
		optionID, questionID,
	).Scan(&correct)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return correct, nil
}

// InsertEvaluation creates the evaluation header row
func (r *EvaluationRepository) InsertEvaluation(bookID, profileID int64, totalQuestions int) (int64, error) {
	query := `
		INSERT INTO evaluations (book_id, profile_id, score, attempts, total_questions, correct_answers, updated_at)
		VALUES (?, ?, 0, 1, ?, 0, CURRENT_TIMESTAMP);
	`
	id, err := r.db.ExecReturningID(query, bookID, profileID, totalQuestions)
	if err != nil {
		return 0, fmt.Errorf("failed to insert evaluation: %w", err)
	}
	return id, nil
}

// InsertAnswer records one scored answer
func (r *EvaluationRepository) InsertAnswer(evaluationID, questionID, optionID int64, isCorrect bool) error {
	query := `
		INSERT INTO evaluation_answers (evaluation_id, question_id, option_id, is_correct)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, evaluationID, questionID, optionID, isCorrect)
	return err
}

// UpdateScore writes the final score onto the evaluation header
func (r *EvaluationRepository) UpdateScore(evaluationID int64, score, correctAnswers int) error {
	query := `
		UPDATE evaluations
		SET score = ?, correct_answers = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, score, correctAnswers, evaluationID)
	return err
}

// CreateChapter inserts a chapter pushed by the ingestion worker
func (r *EvaluationRepository) CreateChapter(bookID int64, number int, title string) (int64, error) {
	query := `
		INSERT INTO chapters (book_id, number, title)
		VALUES (?, ?, ?);
	`
	return r.db.ExecReturningID(query, bookID, number, title)
}

// CreateQuestion inserts a question with its options
func (r *EvaluationRepository) CreateQuestion(chapterID int64, level, prompt string, options []models.QuestionOption) (int64, error) {
	questionID, err := r.db.ExecReturningID(
		"INSERT INTO questions (chapter_id, comprehension_level, prompt) VALUES (?, ?, ?);",
		chapterID, level, prompt,
	)
	if err != nil {
		return 0, err
	}

	for _, o := range options {
		_, err := r.db.Exec(
			"INSERT INTO question_options (question_id, option_text, is_correct) VALUES (?, ?, ?)",
			questionID, o.OptionText, o.IsCorrect,
		)
		if err != nil {
			return 0, err
		}
	}
	return questionID, nil
}
