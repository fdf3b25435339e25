package routes

import (
	"amora_server/controllers"
	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up the proposal lifecycle under /api/proposals
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/proposals").Subrouter()
	matchRouter.Use(middleware.RequireAuth)

	matchRouter.HandleFunc("", controller.SendProposal).Methods("POST")
	matchRouter.HandleFunc("/pending", controller.GetPendingProposals).Methods("GET")
	matchRouter.HandleFunc("/{proposalId}/accept", controller.AcceptProposal).Methods("POST")
	matchRouter.HandleFunc("/{proposalId}/reject", controller.RejectProposal).Methods("POST")
	matchRouter.HandleFunc("/rejections/{notificationId}/chat", controller.ConvertRejectionToChat).Methods("POST")
}
