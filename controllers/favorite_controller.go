package controllers

import (
	"encoding/json"
	"net/http"

	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// FavoriteController handles HTTP requests for feed favorites
type FavoriteController struct {
	FavoriteService *services.FavoriteService
}

// NewFavoriteController creates a new FavoriteController instance
func NewFavoriteController(favoriteService *services.FavoriteService) *FavoriteController {
	return &FavoriteController{FavoriteService: favoriteService}
}

// AddFavorite pins a candidate to the front of the caller's feed
func (fc *FavoriteController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ToUserEmail string `json:"toUserEmail"`
		Position    int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ToUserEmail == "" {
		http.Error(w, "toUserEmail is required", http.StatusBadRequest)
		return
	}

	favorite, err := fc.FavoriteService.AddFavorite(r.Context(), middleware.EmailFromContext(r.Context()), request.ToUserEmail, request.Position)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Favorite added",
		"favorite": favorite,
	})
}

// RemoveFavorite unpins a candidate
func (fc *FavoriteController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	err := fc.FavoriteService.RemoveFavorite(r.Context(), middleware.EmailFromContext(r.Context()), mux.Vars(r)["toUserEmail"])
	if err != nil {
		http.Error(w, "Failed to remove favorite", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Favorite removed"})
}

// GetFavorites lists the caller's favorites in position order
func (fc *FavoriteController) GetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := fc.FavoriteService.GetFavorites(r.Context(), middleware.EmailFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Failed to fetch favorites", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"favorites": favorites,
	})
}
