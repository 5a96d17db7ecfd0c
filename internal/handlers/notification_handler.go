package handlers

import (
	"net/http"

	"readquest/internal/service"
	"readquest/internal/validation"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the user's notifications and unread count
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	list, err := h.notificationService.List(claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// MarkRead flips one of the user's notifications to read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	notificationID, err := validation.ParseID(r.PathValue("id"), "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.notificationService.MarkRead(notificationID, claims.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
