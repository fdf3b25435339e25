package controllers

import (
	"encoding/json"
	"net/http"

	"amora_server/middleware"
	"amora_server/models"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// NotificationController handles listing and dismissing notifications
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// GetAcceptanceNotifications lists the caller's acceptance notifications
func (nc *NotificationController) GetAcceptanceNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := nc.NotificationService.GetAcceptanceNotifications(r.Context(), middleware.EmailFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"notifications": notifications,
	})
}

// GetRejectionNotifications lists the caller's rejection notifications
func (nc *NotificationController) GetRejectionNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := nc.NotificationService.GetRejectionNotifications(r.Context(), middleware.EmailFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Failed to fetch notifications", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"notifications": notifications,
	})
}

// MarkAcceptanceNotificationRead flags an acceptance notification as seen
func (nc *NotificationController) MarkAcceptanceNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := nc.NotificationService.MarkRead(r.Context(), models.MatchAcceptanceNotificationsTable, mux.Vars(r)["notificationId"]); err != nil {
		http.Error(w, "Failed to mark notification read", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked read"})
}

// MarkRejectionNotificationRead flags a rejection notification as seen
func (nc *NotificationController) MarkRejectionNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := nc.NotificationService.MarkRead(r.Context(), models.RejectionNotificationsTable, mux.Vars(r)["notificationId"]); err != nil {
		http.Error(w, "Failed to mark notification read", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked read"})
}

// DismissAcceptanceNotification deletes an acceptance notification
func (nc *NotificationController) DismissAcceptanceNotification(w http.ResponseWriter, r *http.Request) {
	nc.NotificationService.Dismiss(r.Context(), models.MatchAcceptanceNotificationsTable, mux.Vars(r)["notificationId"])
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification dismissed"})
}

// DismissRejectionNotification deletes a rejection notification
func (nc *NotificationController) DismissRejectionNotification(w http.ResponseWriter, r *http.Request) {
	nc.NotificationService.Dismiss(r.Context(), models.RejectionNotificationsTable, mux.Vars(r)["notificationId"])
	json.NewEncoder(w).Encode(map[string]string{"message": "Notification dismissed"})
}
