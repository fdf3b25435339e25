package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up notification listing/dismissal under /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.Use(middleware.RequireAuth)

	notificationRouter.HandleFunc("/acceptances", controller.GetAcceptanceNotifications).Methods("GET")
	notificationRouter.HandleFunc("/rejections", controller.GetRejectionNotifications).Methods("GET")
	notificationRouter.HandleFunc("/acceptances/{notificationId}", controller.DismissAcceptanceNotification).Methods("DELETE")
	notificationRouter.HandleFunc("/rejections/{notificationId}", controller.DismissRejectionNotification).Methods("DELETE")
	notificationRouter.HandleFunc("/acceptances/{notificationId}/read", controller.MarkAcceptanceNotificationRead).Methods("PATCH")
	notificationRouter.HandleFunc("/rejections/{notificationId}/read", controller.MarkRejectionNotificationRead).Methods("PATCH")
}
