package controllers

import (
	"encoding/json"
	"net/http"

	"amora_server/logger"
	"amora_server/services"
)

var uploadPrefixes = map[string]string{
	"profile": "profile-photos/",
	"story":   "story-images/",
	"message": "message-images/",
}

// GeneratePresignedURL generates a presigned URL for S3 uploads
func GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
		Kind     string `json:"kind"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	prefix, ok := uploadPrefixes[payload.Kind]
	if !ok {
		prefix = uploadPrefixes["profile"]
	}

	url, key, err := services.GenerateUploadURL(prefix, payload.FileName, payload.FileType)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate presigned upload URL")
		http.Error(w, "Failed to generate pre-signed URL", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	url, err := services.GenerateReadURL(payload.Key)
	if err != nil {
		http.Error(w, "Failed to generate read pre-signed URL", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
