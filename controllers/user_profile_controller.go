package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles requests related to user profiles
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController creates a new instance of UserProfileController
func NewUserProfileController(userProfileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: userProfileService}
}

// GetProfileByEmail handles fetching a user profile by email
func (c *UserProfileController) GetProfileByEmail(w http.ResponseWriter, r *http.Request) {
	emailID := mux.Vars(r)["emailId"]

	profile, err := c.UserProfileService.GetProfile(r.Context(), emailID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			http.Error(w, "Profile not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch profile", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(profile)
}

// UpdateProfile handles updating the caller's own profile
func (c *UserProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := middleware.EmailFromContext(r.Context())

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updatedProfile, err := c.UserProfileService.UpdateProfile(r.Context(), email, updates)
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": updatedProfile,
	})
}
