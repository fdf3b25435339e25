package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterAdminRoutes sets up the moderation panel under /api/admin
func RegisterAdminRoutes(r *mux.Router, adminService *services.AdminService, userProfileService *services.UserProfileService) {
	controller := controllers.NewAdminController(adminService, userProfileService)

	adminRouter := r.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(middleware.RequireAuth)
	adminRouter.Use(middleware.RequireAdmin)

	adminRouter.HandleFunc("/users", controller.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users/{emailId}/ban", controller.SetBanned).Methods("POST")
	adminRouter.HandleFunc("/users/{emailId}", controller.DeleteUser).Methods("DELETE")
	adminRouter.HandleFunc("/broadcast", controller.BroadcastMessage).Methods("POST")
}
