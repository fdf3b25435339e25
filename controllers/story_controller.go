package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// StoryController handles HTTP requests for stories
type StoryController struct {
	StoryService *services.StoryService
}

// NewStoryController creates a new StoryController instance
func NewStoryController(storyService *services.StoryService) *StoryController {
	return &StoryController{StoryService: storyService}
}

// CreateStory publishes a new story for the caller
func (sc *StoryController) CreateStory(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageKey string `json:"imageKey"`
		Caption  string `json:"caption"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ImageKey == "" {
		http.Error(w, "imageKey is required", http.StatusBadRequest)
		return
	}

	story, err := sc.StoryService.CreateStory(r.Context(), middleware.EmailFromContext(r.Context()), request.ImageKey, request.Caption)
	if err != nil {
		http.Error(w, "Failed to create story", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Story published",
		"story":   story,
	})
}

// GetRecentStories lists stories inside the visibility window
func (sc *StoryController) GetRecentStories(w http.ResponseWriter, r *http.Request) {
	stories, err := sc.StoryService.GetRecentStories(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch stories", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"stories": stories,
	})
}

// DeleteStory removes one of the caller's stories
func (sc *StoryController) DeleteStory(w http.ResponseWriter, r *http.Request) {
	err := sc.StoryService.DeleteStory(r.Context(), mux.Vars(r)["storyId"], middleware.EmailFromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			http.Error(w, "Story not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotStoryOwner):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "Failed to delete story", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Story deleted"})
}
