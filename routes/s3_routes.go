package routes

import (
	"net/http"

	"amora_server/controllers"
	"amora_server/middleware"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for S3-related operations
func RegisterS3Routes(r *mux.Router) {
	r.Handle("/generate-presigned-url", middleware.RequireAuth(http.HandlerFunc(controllers.GeneratePresignedURL))).Methods("POST")
	r.Handle("/get-presigned-read-url", middleware.RequireAuth(http.HandlerFunc(controllers.GetPresignedReadURL))).Methods("POST")
}
