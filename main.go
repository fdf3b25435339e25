package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"amora_server/config"
	"amora_server/logger"
	"amora_server/routes"
	"amora_server/services"
	"amora_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	config.LoadConfig()
	logger.Init(config.AppConfig.AppEnv)

	// Initialize DynamoDB client and store
	logger.Info().Msg("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(config.AppConfig.AWSRegion)
	store := &services.DynamoService{Client: dynamoClient}
	logger.Info().Msg("DynamoDB client initialized.")

	// Socket.IO server and the push adapter the services notify through
	socketServer := socket.NewServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			logger.Error().Err(err).Msg("socket server stopped")
		}
	}()
	defer socketServer.Close()
	pusher := &socket.Pusher{Server: socketServer}

	// Initialize Services
	userProfileService := &services.UserProfileService{Store: store}
	feedService := &services.FeedService{Store: store}
	matchService := &services.MatchService{Store: store, Notifier: pusher}
	chatService := &services.ChatService{Store: store, Notifier: pusher}
	notificationService := &services.NotificationService{Store: store}
	favoriteService := &services.FavoriteService{Store: store}
	storyService := &services.StoryService{Store: store}
	adminService := &services.AdminService{Store: store, Chats: chatService}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Amora")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterAuthRoutes(r, userProfileService)
	routes.RegisterUserProfileRoutes(r, userProfileService)
	routes.RegisterFeedRoutes(r, feedService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterStoryRoutes(r, storyService)
	routes.RegisterFavoriteRoutes(r, favoriteService)
	routes.RegisterAdminRoutes(r, adminService, userProfileService)
	routes.RegisterS3Routes(r)

	// Mount the Socket.IO endpoint
	r.PathPrefix("/socket.io/").Handler(socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	logger.Info().Str("port", config.AppConfig.Port).Msg("Starting server")
	if err := http.ListenAndServe(":"+config.AppConfig.Port, corsHandler); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
