package controllers

import (
	"encoding/json"
	"net/http"

	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// AdminController handles the moderation panel endpoints
type AdminController struct {
	AdminService       *services.AdminService
	UserProfileService *services.UserProfileService
}

// NewAdminController creates a new AdminController instance
func NewAdminController(adminService *services.AdminService, userProfileService *services.UserProfileService) *AdminController {
	return &AdminController{AdminService: adminService, UserProfileService: userProfileService}
}

// ListUsers returns every registered profile
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := ac.AdminService.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"users": users,
	})
}

// SetBanned flips a user's ban flag
func (ac *AdminController) SetBanned(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Banned bool `json:"banned"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := ac.AdminService.SetBanned(r.Context(), mux.Vars(r)["emailId"], request.Banned); err != nil {
		http.Error(w, "Failed to update ban flag", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Ban flag updated"})
}

// DeleteUser removes a user profile
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := ac.AdminService.DeleteUser(r.Context(), mux.Vars(r)["emailId"]); err != nil {
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "User deleted"})
}

// BroadcastMessage delivers an announcement to every user via support chats
func (ac *AdminController) BroadcastMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	admin, err := ac.UserProfileService.GetProfile(r.Context(), middleware.EmailFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Failed to fetch admin profile", http.StatusInternalServerError)
		return
	}

	delivered, err := ac.AdminService.BroadcastMessage(r.Context(), *admin, request.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Broadcast delivered",
		"delivered": delivered,
	})
}
