package handlers

import (
	"barter/internal/middleware"
	"barter/internal/service"
	"barter/models"
	"net/http"
)

// CreateProposalHandler обрабатывает POST /api/ads/{adId}/proposals:
// предложить обмен своего объявления на объявление adId
func (h *Handler) CreateProposalHandler(w http.ResponseWriter, r *http.Request) {
	receiverID, ok := pathID(w, r, "adId")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	var input struct {
		AdSenderID int64  `json:"adSenderId"`
		Comment    string `json:"comment"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	proposal, err := h.Service.ProposeExchange(r.Context(), userID, service.ProposalInput{
		AdSenderID:   input.AdSenderID,
		AdReceiverID: receiverID,
		Comment:      input.Comment,
	})
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, proposal)
}

// GetUserProposalsHandler возвращает отправленные и полученные предложения
// с фильтрами sender, receiver, status
func (h *Handler) GetUserProposalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	proposals, err := h.Service.ListUserProposals(r.Context(), userID, parseProposalFilter(r))
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

func (h *Handler) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "proposalId")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	proposal, err := h.Service.GetProposal(r.Context(), proposalID, userID)
	if err != nil {
		h.writeError(w, r, err, "You are not a participant of this proposal")
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// UpdateProposalStatusHandler обрабатывает PUT /api/proposals/{proposalId}/status
func (h *Handler) UpdateProposalStatusHandler(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := pathID(w, r, "proposalId")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	var input struct {
		Status models.ProposalStatus `json:"status"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	proposal, err := h.Service.UpdateProposalStatus(r.Context(), proposalID, userID, input.Status)
	if err != nil {
		h.writeError(w, r, err, "Only the owner of the requested ad can change the proposal status")
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}
