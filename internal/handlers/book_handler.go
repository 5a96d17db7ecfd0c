package handlers

import (
	"net/http"
	"strconv"

	"readquest/internal/service"
	"readquest/internal/validation"
)

// BookHandler handles catalog requests
type BookHandler struct {
	catalogService *service.CatalogService
	maxUploadSize  int64
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogService *service.CatalogService, maxUploadSize int64) *BookHandler {
	return &BookHandler{catalogService: catalogService, maxUploadSize: maxUploadSize}
}

// Search lists catalog books, optionally filtered by ?q= and ?category_id=
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	var categoryID int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := validation.ParseID(raw, "category_id")
		if err != nil {
			respondServiceError(w, err)
			return
		}
		categoryID = id
	}

	books, err := h.catalogService.Search(r.URL.Query().Get("q"), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, books)
}

// Get returns one catalog book
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookID, err := validation.ParseID(r.PathValue("id"), "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	book, err := h.catalogService.GetBook(bookID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Upload accepts an admin multipart upload with the book file and an
// optional cover image
func (h *BookHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	categoryID, err := validation.ParseID(r.FormValue("category_id"), "category_id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	levelID, err := validation.ParseID(r.FormValue("education_level_id"), "education_level_id")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	upload := service.BookUpload{
		Title:            r.FormValue("title"),
		Author:           r.FormValue("author"),
		Description:      r.FormValue("description"),
		CategoryID:       categoryID,
		EducationLevelID: levelID,
		TotalPages:       atoiOrZero(r.FormValue("total_pages")),
		TotalChapters:    atoiOrZero(r.FormValue("total_chapters")),
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "book file is required")
		return
	}
	defer file.Close()
	upload.File = file
	upload.FileName = fileHeader.Filename
	upload.FileType = fileHeader.Header.Get("Content-Type")

	if cover, coverHeader, err := r.FormFile("cover"); err == nil {
		defer cover.Close()
		upload.Cover = cover
		upload.CoverName = coverHeader.Filename
		upload.CoverType = coverHeader.Header.Get("Content-Type")
	}

	book, err := h.catalogService.UploadBook(r.Context(), upload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, book)
}

// ListCategories returns all catalog categories
func (h *BookHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a catalog category
func (h *BookHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(input.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// ListEducationLevels returns all education levels
func (h *BookHandler) ListEducationLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.catalogService.ListEducationLevels()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, levels)
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
