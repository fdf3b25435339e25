package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterFavoriteRoutes sets up favorite routes under /api/favorites
func RegisterFavoriteRoutes(r *mux.Router, favoriteService *services.FavoriteService) {
	controller := controllers.NewFavoriteController(favoriteService)

	favoriteRouter := r.PathPrefix("/api/favorites").Subrouter()
	favoriteRouter.Use(middleware.RequireAuth)

	favoriteRouter.HandleFunc("", controller.AddFavorite).Methods("POST")
	favoriteRouter.HandleFunc("", controller.GetFavorites).Methods("GET")
	favoriteRouter.HandleFunc("/{toUserEmail}", controller.RemoveFavorite).Methods("DELETE")
}
