package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.Use(middleware.RequireAuth)

	profileRouter.HandleFunc("/email/{emailId}", controller.GetProfileByEmail).Methods("GET")
	profileRouter.HandleFunc("/me", controller.UpdateProfile).Methods("PATCH")
}
