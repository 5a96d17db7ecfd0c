package handlers

import (
	"net/http"

	"readquest/internal/service"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService *service.AuthService
	engagement  *service.Engagement
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, engagement *service.Engagement) *AuthHandler {
	return &AuthHandler{authService: authService, engagement: engagement}
}

type authResponse struct {
	Token     string `json:"token"`
	UserID    int64  `json:"user_id"`
	ProfileID int64  `json:"profile_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Register creates an account with its first reading profile
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Register(input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.engagement.OnRegistration(*result.User, result.Profile.ID)

	respondJSON(w, http.StatusCreated, authResponse{
		Token:     result.Token,
		UserID:    result.User.ID,
		ProfileID: result.Profile.ID,
		Username:  result.User.Username,
		Role:      result.User.Role,
	})
}

// Login verifies credentials and issues an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(input.Username, input.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.engagement.OnLogin(result.User.ID, result.Profile.ID)

	respondJSON(w, http.StatusOK, authResponse{
		Token:     result.Token,
		UserID:    result.User.ID,
		ProfileID: result.Profile.ID,
		Username:  result.User.Username,
		Role:      result.User.Role,
	})
}
