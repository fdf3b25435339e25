package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"amora_server/middleware"
	"amora_server/models"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// ChatController handles HTTP requests for chats and messages
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController creates a new ChatController instance
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// GetChats lists the caller's chats, most recently active first
func (cc *ChatController) GetChats(w http.ResponseWriter, r *http.Request) {
	chats, err := cc.ChatService.GetChatsForUser(r.Context(), middleware.EmailFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Failed to fetch chats", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"chats": chats,
	})
}

// GetMessages fetches messages for a chat in ascending timestamp order
func (cc *ChatController) GetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := cc.ChatService.GetMessages(r.Context(), chatID, limit)
	if err != nil {
		http.Error(w, "Failed to fetch messages", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": messages,
	})
}

// SendMessage appends a message to a chat
func (cc *ChatController) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]

	var request struct {
		SenderName string `json:"senderName"`
		Content    string `json:"content"`
		ImageURL   string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	message, err := cc.ChatService.SendMessage(r.Context(), models.Message{
		ChatID:      chatID,
		SenderEmail: middleware.EmailFromContext(r.Context()),
		SenderName:  request.SenderName,
		Content:     request.Content,
		ImageURL:    request.ImageURL,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
	})
}

// MarkMessagesAsRead clears the unread flag on messages the caller received
func (cc *ChatController) MarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]

	if err := cc.ChatService.MarkMessagesAsRead(r.Context(), chatID, middleware.EmailFromContext(r.Context())); err != nil {
		http.Error(w, "Failed to mark messages as read", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Messages marked as read"})
}

// GetChat fetches a single chat by id
func (cc *ChatController) GetChat(w http.ResponseWriter, r *http.Request) {
	chat, err := cc.ChatService.GetChat(r.Context(), mux.Vars(r)["chatId"])
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			http.Error(w, "Chat not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch chat", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(chat)
}
