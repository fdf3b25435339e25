package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"amora_server/middleware"
	"amora_server/services"
)

// FeedController serves the explore feed
type FeedController struct {
	FeedService *services.FeedService
}

// NewFeedController creates a new FeedController instance
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// GetExploreFeed returns one ranked page of candidate profiles for the
// caller. `q` filters by name/city/interest and resets pagination; `page`
// selects the 0-based page.
func (fc *FeedController) GetExploreFeed(w http.ResponseWriter, r *http.Request) {
	email := middleware.EmailFromContext(r.Context())
	query := r.URL.Query().Get("q")

	page := 0
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 0 {
			http.Error(w, "page must be a non-negative integer", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	profiles, total, err := fc.FeedService.GetExploreFeed(r.Context(), email, query, page)
	if err != nil {
		http.Error(w, "Failed to fetch explore feed", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"profiles": profiles,
		"page":     page,
		"pageSize": services.FeedPageSize,
		"total":    total,
	})
}
