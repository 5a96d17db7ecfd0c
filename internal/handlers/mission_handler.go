package handlers

import (
	"net/http"

	"readquest/internal/models"
	"readquest/internal/service"
	"readquest/internal/validation"
)

// MissionHandler handles mission listing and completion requests
type MissionHandler struct {
	missionService *service.MissionService
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(missionService *service.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// ListActive returns the authenticated profile's mission assignments
func (h *MissionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	missions, err := h.missionService.ActiveMissions(claims.ProfileID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if missions == nil {
		missions = []models.ActiveMission{}
	}
	respondJSON(w, http.StatusOK, missions)
}

// Complete marks an assignment of the authenticated profile complete
func (h *MissionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	assignmentID, err := validation.ParseID(r.PathValue("assignmentID"), "assignmentID")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.missionService.CompleteMission(claims.ProfileID, assignmentID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}
