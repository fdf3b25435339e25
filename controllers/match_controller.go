package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"amora_server/middleware"
	"amora_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for the proposal lifecycle
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// SendProposal records an interest signal from the caller to another user
func (mc *MatchController) SendProposal(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ToUserEmail string `json:"toUserEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ToUserEmail == "" {
		http.Error(w, "toUserEmail is required", http.StatusBadRequest)
		return
	}

	proposal, err := mc.MatchService.SendProposal(r.Context(), middleware.EmailFromContext(r.Context()), request.ToUserEmail)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Proposal sent",
		"proposal": proposal,
	})
}

// GetPendingProposals lists the pending proposals addressed to the caller
func (mc *MatchController) GetPendingProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := mc.MatchService.GetPendingProposals(r.Context(), middleware.EmailFromContext(r.Context()))
	if err != nil {
		http.Error(w, "Failed to fetch proposals", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"proposals": proposals,
	})
}

// AcceptProposal runs the acceptance workflow for a proposal
func (mc *MatchController) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	proposalID := mux.Vars(r)["proposalId"]

	result, err := mc.MatchService.AcceptProposal(r.Context(), proposalID)
	if err != nil {
		writeProposalError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "It's a match!",
		"matchId": result.MatchID,
		"chatId":  result.ChatID,
	})
}

// RejectProposal flags a proposal as rejected
func (mc *MatchController) RejectProposal(w http.ResponseWriter, r *http.Request) {
	proposalID := mux.Vars(r)["proposalId"]

	if err := mc.MatchService.RejectProposal(r.Context(), proposalID); err != nil {
		writeProposalError(w, err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Proposal rejected"})
}

// ConvertRejectionToChat turns a rejection notification into a conversation
func (mc *MatchController) ConvertRejectionToChat(w http.ResponseWriter, r *http.Request) {
	notificationID := mux.Vars(r)["notificationId"]

	chat, err := mc.MatchService.ConvertRejectionToChat(r.Context(), notificationID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Chat created",
		"chat":    chat,
	})
}

func writeProposalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrProposalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrProposalNotPending):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
