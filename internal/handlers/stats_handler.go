package handlers

import (
	"net/http"

	"readquest/internal/service"
)

// StatsHandler handles streak and statistics requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Streak returns the profile's current reading streak in days
func (h *StatsHandler) Streak(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	streak, err := h.statsService.CurrentStreak(claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"streak_days": streak})
}

// General returns the aggregate statistics with the live streak
func (h *StatsHandler) General(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	stats, err := h.statsService.GeneralStats(claims.UserID, claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
