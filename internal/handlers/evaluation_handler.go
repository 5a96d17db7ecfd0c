package handlers

import (
	"net/http"

	"readquest/internal/models"
	"readquest/internal/service"
	"readquest/internal/validation"
)

// EvaluationHandler handles quiz and scoring requests
type EvaluationHandler struct {
	evaluationService *service.EvaluationService
	engagement        *service.Engagement
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService *service.EvaluationService, engagement *service.Engagement) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService, engagement: engagement}
}

// ListChapters returns a book's chapters
func (h *EvaluationHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	bookID, err := validation.ParseID(r.PathValue("bookID"), "bookID")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	chapters, err := h.evaluationService.ListChapters(bookID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chapters)
}

// ListQuestions returns a chapter's questions. The correct flags never
// leave the server: QuestionOption hides them from serialization.
func (h *EvaluationHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	chapterID, err := validation.ParseID(r.PathValue("chapterID"), "chapterID")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	questions, err := h.evaluationService.ListQuestions(chapterID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// Submit scores an evaluation and dispatches the follow-up engagement work
func (h *EvaluationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var input struct {
		BookID  int64                    `json:"book_id"`
		Answers []models.SubmittedAnswer `json:"answers"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.evaluationService.Submit(claims.UserID, claims.ProfileID, input.BookID, input.Answers)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.engagement.OnQualifyingActivity(claims.UserID, claims.ProfileID)

	respondJSON(w, http.StatusCreated, result)
}
