package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"socialhub/internal/middleware"
	"socialhub/internal/service"
)

// CreatePost accepts the composer's multipart submission and responds with
// the whole post collection.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		WriteError(w, "Authorization required", http.StatusUnauthorized)
		return
	}

	form, err := h.parseMultipart(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	defer form.Close()

	if formUserID := form.Value("userId"); formUserID != "" && formUserID != userID {
		h.writeServiceError(w, r, fmt.Errorf("%w: userId does not match the authenticated user", service.ErrForbidden))
		return
	}

	in := service.CreatePostInput{
		AuthorID:    userID,
		Description: form.Raw("description"),
	}

	if in.Picture, err = form.File("picture"); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if in.Video, err = form.File("video"); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if in.Audio, err = form.File("audio"); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	posts, err := h.PostService.CreatePost(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusCreated)
}

func (h *Handlers) GetFeedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetFeed(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.GetUserPosts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	post, err := h.PostService.LikePost(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.PostService.DeletePost(r.Context(), mux.Vars(r)["id"], userID, false); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
