package handlers

import (
	"net/http"

	"readquest/internal/service"
)

// IngestHandler receives chapters and questions pushed by the external
// content worker after it has processed an uploaded book
type IngestHandler struct {
	evaluationService *service.EvaluationService
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(evaluationService *service.EvaluationService) *IngestHandler {
	return &IngestHandler{evaluationService: evaluationService}
}

// CreateChapter stores one chapter with its generated questions
func (h *IngestHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var input service.ChapterInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapterID, err := h.evaluationService.IngestChapter(input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"chapter_id": chapterID})
}
