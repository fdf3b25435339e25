package routes

import (
	"amora_server/controllers"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes sets up registration and login under /api/auth
func RegisterAuthRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewAuthController(userProfileService)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controller.Register).Methods("POST")
	authRouter.HandleFunc("/login", controller.Login).Methods("POST")
}
