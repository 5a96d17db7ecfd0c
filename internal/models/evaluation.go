package models

import "time"

// Evaluation is one scored quiz attempt for a (profile, book)
type Evaluation struct {
	ID             int64     `json:"id"`
	BookID         int64     `json:"book_id"`
	ProfileID      int64     `json:"profile_id"`
	Score          int       `json:"score"`
	Attempts       int       `json:"attempts"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SubmittedAnswer is one answer in an evaluation submission
type SubmittedAnswer struct {
	QuestionID int64 `json:"question_id"`
	OptionID   int64 `json:"option_id"`
}

// EvaluationResult is returned to the client after scoring
type EvaluationResult struct {
	EvaluationID int64 `json:"evaluation_id"`
	Total        int   `json:"total"`
	Correct      int   `json:"correct"`
	Score        int   `json:"score"`
}
