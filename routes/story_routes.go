package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterStoryRoutes sets up story routes under /api/stories
func RegisterStoryRoutes(r *mux.Router, storyService *services.StoryService) {
	controller := controllers.NewStoryController(storyService)

	storyRouter := r.PathPrefix("/api/stories").Subrouter()
	storyRouter.Use(middleware.RequireAuth)

	storyRouter.HandleFunc("", controller.CreateStory).Methods("POST")
	storyRouter.HandleFunc("", controller.GetRecentStories).Methods("GET")
	storyRouter.HandleFunc("/{storyId}", controller.DeleteStory).Methods("DELETE")
}
