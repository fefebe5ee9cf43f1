package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, users, http.StatusOK)
}

func (h *Handlers) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.AdminService.DeleteUser(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.AdminService.DeletePost(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminStats reports row counts for the main tables.
func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.AdminService.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}
