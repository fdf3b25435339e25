package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up the explore feed under /api/explore
func RegisterFeedRoutes(r *mux.Router, feedService *services.FeedService) {
	controller := controllers.NewFeedController(feedService)

	feedRouter := r.PathPrefix("/api/explore").Subrouter()
	feedRouter.Use(middleware.RequireAuth)

	feedRouter.HandleFunc("", controller.GetExploreFeed).Methods("GET")
}
