package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/middleware"
)

type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Text       string `json:"text" validate:"required,max=2000"`
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "receiverId and text are required", http.StatusBadRequest)
		return
	}

	senderID, _ := middleware.UserID(r.Context())

	message, err := h.MessageService.Send(r.Context(), senderID, req.ReceiverID, req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, message, http.StatusCreated)
}

func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	messages, err := h.MessageService.Conversation(r.Context(), userID, mux.Vars(r)["userId"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, messages, http.StatusOK)
}
