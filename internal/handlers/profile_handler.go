package handlers

import (
	"net/http"

	"readquest/internal/repository"
	"readquest/internal/service"
)

// ProfileHandler serves the profile screen
type ProfileHandler struct {
	profiles     *repository.ProfileRepository
	statsService *service.StatsService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *repository.ProfileRepository, statsService *service.StatsService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, statsService: statsService}
}

// Get returns the combined profile, account and statistics view with the
// live streak filled in
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	data, err := h.profiles.GetProfileData(claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	streak, err := h.statsService.CurrentStreak(claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	data.StreakDays = streak

	respondJSON(w, http.StatusOK, data)
}
