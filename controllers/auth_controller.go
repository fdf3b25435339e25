package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"amora_server/logger"
	"amora_server/models"
	"amora_server/services"
)

// AuthController handles registration and login
type AuthController struct {
	UserProfileService *services.UserProfileService
}

// NewAuthController creates a new AuthController instance
func NewAuthController(userProfileService *services.UserProfileService) *AuthController {
	return &AuthController{UserProfileService: userProfileService}
}

// Register creates a new user profile
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var request struct {
		models.UserProfile
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	profile, err := c.UserProfileService.Register(r.Context(), request.UserProfile, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		logger.Error().Err(err).Msg("registration failed")
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Profile created successfully",
		"profile": profile,
	})
}

// Login verifies credentials and returns a session token
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var request struct {
		EmailID  string `json:"emailId"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	token, profile, err := c.UserProfileService.Login(r.Context(), request.EmailID, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, services.ErrUserBanned):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			logger.Error().Err(err).Msg("login failed")
			http.Error(w, "Failed to log in", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}
