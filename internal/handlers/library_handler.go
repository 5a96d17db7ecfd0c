package handlers

import (
	"net/http"

	"readquest/internal/service"
	"readquest/internal/validation"
)

// LibraryHandler handles personal-library and favorites requests
type LibraryHandler struct {
	libraryService *service.LibraryService
	engagement     *service.Engagement
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryService *service.LibraryService, engagement *service.Engagement) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService, engagement: engagement}
}

// List returns the authenticated profile's library
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	entries, err := h.libraryService.List(claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// Add puts a catalog book into the library
func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var input struct {
		BookID int64 `json:"book_id"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.libraryService.AddBook(claims.ProfileID, input.BookID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// UpdateProgress writes new reading progress for a library book and
// dispatches the follow-up engagement work
func (h *LibraryHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	bookID, err := validation.ParseID(r.PathValue("bookID"), "bookID")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var update service.ProgressUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.libraryService.UpdateProgress(claims.UserID, claims.ProfileID, bookID, update); err != nil {
		respondServiceError(w, err)
		return
	}

	h.engagement.OnQualifyingActivity(claims.UserID, claims.ProfileID)

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ListFavorites returns the profile's favorite book IDs
func (h *LibraryHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	ids, err := h.libraryService.ListFavorites(claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ids)
}

// AddFavorite marks a book as favorite
func (h *LibraryHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	bookID, err := validation.ParseID(r.PathValue("bookID"), "bookID")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.libraryService.AddFavorite(claims.ProfileID, bookID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveFavorite unmarks a favorite
func (h *LibraryHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	bookID, err := validation.ParseID(r.PathValue("bookID"), "bookID")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.libraryService.RemoveFavorite(claims.ProfileID, bookID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
