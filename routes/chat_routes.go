package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up chat and message routes under /api/chats
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chats").Subrouter()
	chatRouter.Use(middleware.RequireAuth)

	chatRouter.HandleFunc("", controller.GetChats).Methods("GET")
	chatRouter.HandleFunc("/{chatId}", controller.GetChat).Methods("GET")
	chatRouter.HandleFunc("/{chatId}/messages", controller.GetMessages).Methods("GET")
	chatRouter.HandleFunc("/{chatId}/messages", controller.SendMessage).Methods("POST")
	chatRouter.HandleFunc("/{chatId}/read", controller.MarkMessagesAsRead).Methods("POST")
}
