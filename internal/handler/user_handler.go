package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/middleware"
)

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) GetUserFriends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.UserService.GetFriends(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, friends, http.StatusOK)
}

// AddRemoveFriend toggles a friendship. Users may only edit their own list.
func (h *Handlers) AddRemoveFriend(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userID, _ := middleware.UserID(r.Context())
	if vars["id"] != userID {
		WriteError(w, "Access denied", http.StatusForbidden)
		return
	}

	friends, err := h.UserService.ToggleFriend(r.Context(), userID, vars["friendId"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, friends, http.StatusOK)
}
